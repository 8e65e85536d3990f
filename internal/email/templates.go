package email

import "fmt"

// ItemFoundBody renders the mail sent to an item's contact address when
// someone marks it found through the legacy shortcut.
func ItemFoundBody(itemName, location, description string) (subject, body string) {
	subject = fmt.Sprintf("Great News! Your item %q was found", itemName)
	body = fmt.Sprintf(`
		<h2>Good News!</h2>
		<p>Someone has reported finding your item: <strong>%s</strong></p>
		<p><strong>Location:</strong> %s</p>
		<p><strong>Description:</strong> %s</p>
		<p>Please log in to the app to contact the finder.</p>`,
		itemName, location, description)
	return subject, body
}
