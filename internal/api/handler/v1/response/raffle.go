package response

import (
	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/pkg/whatsapp"
)

const (
	MsgClaimed            = "Número reservado! Agora é só enviar o comprovante ou combinar a fralda."
	MsgNumberTaken        = "Esse número já foi escolhido. Escolha outro."
	MsgNumberNotFound     = "Número inválido."
	MsgFillNameAndContact = "Preencha nome e WhatsApp."
	MsgTextTooLong        = "Texto muito longo. Abrevie o nome ou o contato."
	MsgUnauthorized       = "Não autorizado"
	MsgPaymentConfirmed   = "Pagamento confirmado ✅"
	MsgNumberNotClaimed   = "Esse número ainda não foi escolhido."
	MsgAlreadyConfirmed   = "Pagamento já confirmado para esse número."
	MsgTooManyRequests    = "Muitas tentativas. Tente novamente em instantes."
	MsgUnexpectedError    = "Erro inesperado"
)

type NumberStatus struct {
	Number int                 `json:"number"`
	Status domain.NumberStatus `json:"status"`
}

type NumbersResponse struct {
	Numbers []NumberStatus `json:"numbers"`
}

type AdminListResponse struct {
	Items []domain.RaffleNumber `json:"items"`
}

type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type ClaimResponse struct {
	Result
	DiaperSize domain.DiaperSize `json:"diaperSize,omitempty"`
	ShareLinks []whatsapp.Link   `json:"shareLinks,omitempty"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func NewNumbersResponse(numbers []domain.RaffleNumber) NumbersResponse {
	out := make([]NumberStatus, len(numbers))
	for i, n := range numbers {
		out[i] = NumberStatus{Number: n.Number, Status: n.Status}
	}

	return NumbersResponse{Numbers: out}
}

func NewAdminListResponse(numbers []domain.RaffleNumber) AdminListResponse {
	if numbers == nil {
		numbers = []domain.RaffleNumber{}
	}

	return AdminListResponse{Items: numbers}
}
