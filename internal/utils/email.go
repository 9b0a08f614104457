package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"lumio_back_end/internal/models"
)

// SendOrderStatusEmail envoie un email de notification de changement de statut.
// Best effort : l'échec est loggé par l'appelant, jamais bloquant.
func SendOrderStatusEmail(order models.Order, userEmail, newStatus string) error {
	subject := statusEmailSubject(newStatus)
	html := statusEmailHTML(order, newStatus)

	if err := sendEmail(userEmail, subject, html); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, userEmail)
	return nil
}

func sendEmail(to, subject, htmlBody string) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@lumio.shop"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

func statusEmailSubject(status string) string {
	switch status {
	case models.OrderStatusShipped:
		return "📦 Votre commande a été expédiée - Lumio"
	case models.OrderStatusCancelled:
		return "❌ Commande annulée - Lumio"
	case models.OrderStatusPending:
		return "⏳ Commande en attente - Lumio"
	default:
		return "📋 Mise à jour de votre commande - Lumio"
	}
}

func statusEmailMessage(status string) string {
	switch status {
	case models.OrderStatusShipped:
		return "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
	case models.OrderStatusCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	case models.OrderStatusPending:
		return "Votre commande est en attente de traitement."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func statusEmailHTML(order models.Order, status string) string {
	orderRef := order.ID
	if len(orderRef) > 8 {
		orderRef = orderRef[:8]
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mise à jour de votre commande</h2>
		<p>%s</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;"><strong>Commande</strong></td>
				<td style="padding: 8px; border: 1px solid #ddd;">#%s</td>
			</tr>
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;"><strong>Montant total</strong></td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
			</tr>
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;"><strong>Statut</strong></td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
			</tr>
		</table>
		<p style="color: #999; font-size: 12px;">Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
	</div>
</body>
</html>
`, statusEmailMessage(status), orderRef, order.TotalPrice, status)
}
