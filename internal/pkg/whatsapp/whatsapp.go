package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/vietanh2810/raffle-api/internal/domain"
)

const baseURL = "https://wa.me/"

var nonDigits = regexp2.MustCompile(`\D+`, regexp2.None)

type Recipient struct {
	Label string
	Phone string
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Share struct {
	Title       string
	Number      int
	Name        string
	Contact     string
	PaymentType domain.PaymentType
	PixKey      string
	PixValue    int
}

// Message renders the text a participant sends to the organizers after claiming.
func Message(s Share) string {
	name := s.Name
	if name == "" {
		name = "(não informado)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Olá! 😊\n%s\n\n", s.Title)
	fmt.Fprintf(&b, "✅ Número escolhido: %d\n", s.Number)
	fmt.Fprintf(&b, "🧷 Fralda (pela tabela): %s\n", domain.DiaperSizeFor(s.Number))
	fmt.Fprintf(&b, "👤 Nome: %s\n", name)

	if s.PaymentType == domain.PaymentInKind {
		contact := s.Contact
		if contact == "" {
			contact = "(não informado)"
		}
		fmt.Fprintf(&b, "📱 Meu WhatsApp: %s\n\n", contact)
		b.WriteString("🚚 Vou entregar a fralda / combinar retirada.")

		return b.String()
	}

	fmt.Fprintf(&b, "\n💰 Pix: R$ %d,00\n", s.PixValue)
	fmt.Fprintf(&b, "🔑 Chave Pix: %s\n\n", s.PixKey)
	b.WriteString("📎 Estou enviando o comprovante agora:")

	return b.String()
}

// Links builds one wa.me deep link per recipient with message prefilled.
// Recipients without any digit in their phone are skipped.
func Links(recipients []Recipient, message string) []Link {
	query := url.Values{"text": {message}}.Encode()

	links := make([]Link, 0, len(recipients))
	for _, r := range recipients {
		phone := digitsOnly(r.Phone)
		if phone == "" {
			continue
		}
		links = append(links, Link{
			Label: r.Label,
			URL:   baseURL + phone + "?" + query,
		})
	}

	return links
}

func digitsOnly(s string) string {
	out, err := nonDigits.Replace(s, "", -1, -1)
	if err != nil {
		return ""
	}

	return out
}
