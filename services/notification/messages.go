package notification

import (
	"fmt"
	"strings"

	"kleanzilla/models"
	"kleanzilla/utils"
)

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// TotalDisplay renders a quote's price range for display, collapsing equal
// bounds into a single amount ("R650" or "R600–R700").
func TotalDisplay(totalMin, totalMax float64) string {
	if totalMin > 0 && totalMax > 0 && totalMin != totalMax {
		return utils.FormatZAR(totalMin) + "–" + utils.FormatZAR(totalMax)
	}
	if totalMin > 0 {
		return utils.FormatZAR(totalMin)
	}
	return utils.FormatZAR(totalMax)
}

// QuoteMessage is the quote summary mailed after createQuote, with the magic
// link embedding the new gallery token.
func QuoteMessage(input models.QuoteInput, magicLink string, recipients []string) Message {
	totalDisplay := TotalDisplay(input.TotalMin, input.TotalMax)
	addOns := "None"
	if len(input.AddOns) > 0 {
		addOns = strings.Join(input.AddOns, ", ")
	}
	greeting := input.FirstName
	if greeting == "" {
		greeting = "there"
	}

	text := fmt.Sprintf(`Hi %s,

Thanks for requesting a quote. Here are your details:

Service: %s (%s bedrooms)
Address: %s
Date/time: %s %s
Add-ons: %s
Estimated total: %s

View your booking and photos here:
%s

We will confirm availability shortly.`,
		greeting, orNA(input.CleanType), orNA(input.Bedrooms), orNA(input.Address),
		orNA(input.BookingDate), input.BookingTime, addOns, totalDisplay, magicLink)

	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thanks for requesting a quote. Here are your details:</p>
<ul>
  <li><strong>Service:</strong> %s (%s bedrooms)</li>
  <li><strong>Address:</strong> %s</li>
  <li><strong>Date/time:</strong> %s %s</li>
  <li><strong>Add-ons:</strong> %s</li>
  <li><strong>Estimated total:</strong> %s</li>
</ul>
<p>View your booking and photos here:</p>
<p><a href="%s">%s</a></p>
<p>We will confirm availability shortly.</p>`,
		greeting, orNA(input.CleanType), orNA(input.Bedrooms), orNA(input.Address),
		orNA(input.BookingDate), input.BookingTime, addOns, totalDisplay, magicLink, magicLink)

	return Message{
		To:      recipients,
		Subject: "Your Clean Zilla quote · " + totalDisplay,
		Text:    text,
		HTML:    html,
	}
}

// MagicLinkMessage delivers a fresh gallery link for an existing booking.
func MagicLinkMessage(magicLink, recipient string) Message {
	text := fmt.Sprintf(`Here is your secure link to view your booking and photos:

%s

If you did not request this, you can ignore this email.`, magicLink)

	html := fmt.Sprintf(`<p>Here is your secure link to view your booking and photos:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`, magicLink, magicLink)

	return Message{
		To:      []string{recipient},
		Subject: "Your Clean Zilla photo gallery link",
		Text:    text,
		HTML:    html,
	}
}

// AdminLinkMessage delivers an admin upload link to an allow-listed address.
func AdminLinkMessage(adminLink, recipient string) Message {
	text := fmt.Sprintf("Here is your secure admin upload link:\n\n%s", adminLink)
	html := fmt.Sprintf(`<p>Here is your secure admin upload link:</p>
<p><a href="%s">%s</a></p>`, adminLink, adminLink)

	return Message{
		To:      []string{recipient},
		Subject: "Your Clean Zilla admin upload link",
		Text:    text,
		HTML:    html,
	}
}

// DisputeMessage notifies the business and the client of a submitted dispute.
func DisputeMessage(booking models.Booking, notes string, files, recipients []string) Message {
	fileList := "No files uploaded."
	var fileItems string
	if len(files) > 0 {
		bullets := make([]string, len(files))
		items := make([]string, len(files))
		for i, u := range files {
			bullets[i] = "• " + u
			items[i] = fmt.Sprintf(`<li><a href="%s">%s</a></li>`, u, u)
		}
		fileList = strings.Join(bullets, "\n")
		fileItems = strings.Join(items, "")
	} else {
		fileItems = "<li>No files uploaded.</li>"
	}
	if notes == "" {
		notes = "No notes provided."
	}

	text := fmt.Sprintf(`Dispute submitted
Booking: %s
Client: %s
Service: %s (%s bedrooms)
Date: %s

Notes:
%s

Dispute uploads:
%s`,
		booking.BookingID, booking.Email, orNA(booking.CleanType), orNA(booking.Bedrooms),
		orNA(booking.BookingDate), notes, fileList)

	html := fmt.Sprintf(`<h2>Dispute submitted</h2>
<p><strong>Booking:</strong> %s</p>
<p><strong>Client:</strong> %s</p>
<p><strong>Service:</strong> %s (%s bedrooms)</p>
<p><strong>Date:</strong> %s</p>
<p><strong>Notes:</strong></p>
<p>%s</p>
<p><strong>Dispute uploads:</strong></p>
<ul>%s</ul>`,
		booking.BookingID, booking.Email, orNA(booking.CleanType), orNA(booking.Bedrooms),
		orNA(booking.BookingDate), notes, fileItems)

	return Message{
		To:      recipients,
		Subject: "KleanZilla dispute submitted: " + booking.BookingID,
		Text:    text,
		HTML:    html,
	}
}

// PaymentConfirmationMessage is sent once a booking transitions to paid.
func PaymentConfirmationMessage(booking models.Booking, amount float64, recipients []string) Message {
	service := booking.CleanType
	if service == "" {
		service = "your booking"
	}

	text := fmt.Sprintf(`Thanks! We've received your Payfast payment for %s.

Booking: %s
Amount: %s
We'll confirm availability shortly.`, service, booking.BookingID, utils.FormatZAR(amount))

	html := fmt.Sprintf(`<p>Thanks! We've received your Payfast payment for <strong>%s</strong>.</p>
<p><strong>Booking:</strong> %s<br/>
<strong>Amount:</strong> %s</p>
<p>We'll confirm availability shortly.</p>`, service, booking.BookingID, utils.FormatZAR(amount))

	return Message{
		To:      recipients,
		Subject: "Payment received · Booking " + booking.BookingID,
		Text:    text,
		HTML:    html,
	}
}

// ContactMessage forwards a contact-form enquiry to the business inbox.
func ContactMessage(name, email, phone, message, recipient string) Message {
	text := fmt.Sprintf(`New enquiry received:

Name: %s
Email: %s
Phone: %s

Message:
%s`, name, email, orNA(phone), message)

	html := fmt.Sprintf(`<p><strong>New enquiry received:</strong></p>
<ul>
  <li><strong>Name:</strong> %s</li>
  <li><strong>Email:</strong> %s</li>
  <li><strong>Phone:</strong> %s</li>
</ul>
<p><strong>Message:</strong></p>
<p>%s</p>`, name, email, orNA(phone), strings.ReplaceAll(message, "\n", "<br />"))

	return Message{
		To:      []string{recipient},
		ReplyTo: email,
		Subject: "KleanZilla enquiry from " + name,
		Text:    text,
		HTML:    html,
	}
}

// UploadSummaryInput carries the listing details mailed after a client
// finishes uploading photos for a listing clean.
type UploadSummaryInput struct {
	ClientEmail   string   `json:"clientEmail"`
	ListingID     string   `json:"listingId"`
	ApartmentSize string   `json:"apartmentSize"`
	CleaningType  string   `json:"cleaningType"`
	Extras        []string `json:"extras"`
	Notes         string   `json:"notes"`
	Date          string   `json:"date"`
	Files         []string `json:"files"`
}

// UploadSummaryMessage summarizes a listing's details and uploaded photos.
func UploadSummaryMessage(input UploadSummaryInput, recipients []string) Message {
	extraList := "None"
	extraItems := "<li>None</li>"
	if len(input.Extras) > 0 {
		bullets := make([]string, len(input.Extras))
		items := make([]string, len(input.Extras))
		for i, e := range input.Extras {
			bullets[i] = "• " + e
			items[i] = "<li>" + e + "</li>"
		}
		extraList = strings.Join(bullets, "\n")
		extraItems = strings.Join(items, "")
	}

	fileList := "No files uploaded."
	fileItems := "<li>No files uploaded.</li>"
	if len(input.Files) > 0 {
		bullets := make([]string, len(input.Files))
		items := make([]string, len(input.Files))
		for i, u := range input.Files {
			bullets[i] = "• " + u
			items[i] = fmt.Sprintf(`<li><a href="%s">%s</a></li>`, u, u)
		}
		fileList = strings.Join(bullets, "\n")
		fileItems = strings.Join(items, "")
	}

	notes := input.Notes
	if notes == "" {
		notes = "None"
	}

	text := fmt.Sprintf(`Listing details
Listing: %s
Client: %s
Date: %s
Apartment size: %s
Cleaning type: %s

Extras:
%s

Notes:
%s

Uploaded photos:
%s`,
		input.ListingID, input.ClientEmail, orNA(input.Date), orNA(input.ApartmentSize),
		orNA(input.CleaningType), extraList, notes, fileList)

	html := fmt.Sprintf(`<h2>Listing details</h2>
<p><strong>Listing:</strong> %s</p>
<p><strong>Client:</strong> %s</p>
<p><strong>Date:</strong> %s</p>
<p><strong>Apartment size:</strong> %s</p>
<p><strong>Cleaning type:</strong> %s</p>
<p><strong>Extras:</strong></p>
<ul>%s</ul>
<p><strong>Notes:</strong> %s</p>
<p><strong>Uploaded photos:</strong></p>
<ul>%s</ul>`,
		input.ListingID, input.ClientEmail, orNA(input.Date), orNA(input.ApartmentSize),
		orNA(input.CleaningType), extraItems, notes, fileItems)

	return Message{
		To:      recipients,
		Subject: "KleanZilla listing details: " + input.ListingID,
		Text:    text,
		HTML:    html,
	}
}
