package mailer

import "fmt"

// Templates for the portal's outbound mail. Kept as plain Sprintf HTML; the
// club branding strings match the production emails.

// ContactConfirmation is sent to the person who used the contact form.
func ContactConfirmation(name, message string) (subject, html string) {
	preview := message
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	subject = "Thank you for contacting SDC!"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1>Software Development Club</h1>
<h2>Thank you for reaching out!</h2>
<p>Dear %s,</p>
<p>We have received your message regarding: <em>%q</em></p>
<p>Our team will get back to you within 24-48 hours. In the meantime, feel free to explore our
registration portal and learn more about our ongoing recruitment.</p>
<p>Best regards,<br><strong>The SDC Team</strong></p>
</div>`, name, preview)
	return subject, html
}

// OwnerNotification is sent to the club inbox for each new inquiry.
func OwnerNotification(name, email, message string) (subject, html string) {
	subject = fmt.Sprintf("New Contact Inquiry from %s - SDC Registration Portal", name)
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>New Contact Inquiry Received!</h2>
<p>You have received a new message from the SDC Registration Portal:</p>
<ul>
<li><strong>Name:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Message:</strong> %s</li>
</ul>
<p>Best regards,<br>SDC Registration Portal</p>
</div>`, name, email, message)
	return subject, html
}

// PasswordReset carries the one-shot reset token.
func PasswordReset(name, token string) (subject, html string) {
	subject = "Reset your SDC portal password"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Password Reset</h2>
<p>Hi %s,</p>
<p>Use this code to reset your SDC portal password. It expires in one hour and works once:</p>
<p><strong>%s</strong></p>
<p>If you did not request a reset, you can ignore this email.</p>
</div>`, name, token)
	return subject, html
}

// SubmissionReceipt confirms a recorded project submission.
func SubmissionReceipt(name, githubLink string) (subject, html string) {
	subject = "Your SDC project submission was received"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Submission Received</h2>
<p>Hi %s,</p>
<p>Your project submission has been recorded:</p>
<p><a href="%s">%s</a></p>
<p>The admin team will review it and mark your progress on the timeline. Submissions can be made
only once; use the Contact Us form for any changes.</p>
<p>Best regards,<br><strong>The SDC Team</strong></p>
</div>`, name, githubLink, githubLink)
	return subject, html
}
