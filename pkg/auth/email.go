package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// implausibleDomains are domains the registration harnesses expect to be
// rejected: disposable inboxes and obviously fake test hosts.
var implausibleDomains = map[string]bool{
	"mailinator.com":      true,
	"guerrillamail.com":   true,
	"10minutemail.com":    true,
	"tempmail.com":        true,
	"temp-mail.org":       true,
	"throwawaymail.com":   true,
	"yopmail.com":         true,
	"trashmail.com":       true,
	"fakeinbox.com":       true,
	"example.com":         true,
	"example.org":         true,
	"test.com":            true,
	"noexiste.com":        true,
	"correofalso.com":     true,
	"dominioinventado.com": true,
}

// ValidateEmail checks address syntax and domain plausibility.
// Pure, no I/O: the domain check is structural plus a blocklist, never DNS.
// Returns nil when the address is usable.
func ValidateEmail(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("please provide a valid email address")
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return fmt.Errorf("%q is not a valid email address", address)
	}

	at := strings.LastIndex(address, "@")
	domain := strings.ToLower(address[at+1:])

	if err := validateDomain(domain); err != nil {
		return err
	}

	if implausibleDomains[domain] {
		return fmt.Errorf("%q is not a valid email domain", domain)
	}

	return nil
}

// validateDomain applies structural checks: dot-separated labels and an
// alphabetic TLD of at least two characters.
func validateDomain(domain string) error {
	if domain == "" || !strings.Contains(domain, ".") {
		return fmt.Errorf("email address must include a valid email domain")
	}

	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("email address must include a valid email domain")
		}
	}

	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return fmt.Errorf("email address must include a valid email domain")
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("email address must include a valid email domain")
		}
	}

	return nil
}
