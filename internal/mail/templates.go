package mail

import "fmt"

func Verification(url string) (subject, body string) {
	subject = "Vérifiez votre adresse email"
	body = fmt.Sprintf(
		"Bonjour,\n\nMerci de vérifier votre adresse email en suivant ce lien :\n%s\n\nCe lien expire dans 3 heures.\n",
		url)
	return subject, body
}

func FicheConfirmation(url string) (subject, body string) {
	subject = "Confirmation de création de votre fiche d'entreprise"
	body = fmt.Sprintf(
		"Bonjour,\n\nVotre fiche d'entreprise a bien été créée. Vous pouvez la consulter ici :\n%s\n",
		url)
	return subject, body
}

func ContactRelay(name, email, subject, message, recipientType string) (mailSubject, body string) {
	mailSubject = subject
	body = fmt.Sprintf(
		"Message reçu via le formulaire de contact (%s)\n\nDe : %s <%s>\n\n%s\n",
		recipientType, name, email, message)
	return mailSubject, body
}
