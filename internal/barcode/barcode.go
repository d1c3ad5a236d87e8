// Package barcode validates the retail barcodes a keyboard-wedge scanner types in.
package barcode

import (
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
)

// Symbology is a recognised barcode family
type Symbology string

const (
	UPCA  Symbology = "UPC-A"
	UPCE  Symbology = "UPC-E"
	EAN13 Symbology = "EAN-13"
	EAN8  Symbology = "EAN-8"
)

// Normalize strips spaces and dashes and checks length and check digit.
// It returns the digits the backend should receive.
func Normalize(code string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\t', '\r', '\n':
			return -1
		}
		return r
	}, code)

	if digits == "" {
		return "", domain.Invalid("barcode is empty")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", domain.Invalid("barcode %q contains non-digits", code)
		}
	}
	if _, err := Detect(digits); err != nil {
		return "", err
	}
	return digits, nil
}

// Detect identifies the symbology of a digit string with a valid check digit.
// An 8-digit code is tried as EAN-8 first, then as UPC-E.
func Detect(digits string) (Symbology, error) {
	switch len(digits) {
	case 12:
		if validGS1(digits) {
			return UPCA, nil
		}
	case 13:
		if validGS1(digits) {
			return EAN13, nil
		}
	case 8:
		if validGS1(digits) {
			return EAN8, nil
		}
		if expanded, ok := expandUPCE(digits); ok && validGS1(expanded) {
			return UPCE, nil
		}
	default:
		return "", domain.Invalid("barcode must have 8, 12 or 13 digits, got %d", len(digits))
	}
	return "", domain.Invalid("barcode %s has a bad check digit", digits)
}

// CheckDigit computes the GS1 check digit for a payload without its check digit
func CheckDigit(payload string) int {
	sum := 0
	// Weights alternate 3,1 starting from the rightmost payload digit
	for i, weight := len(payload)-1, 3; i >= 0; i-- {
		sum += int(payload[i]-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10
}

func validGS1(digits string) bool {
	n := len(digits)
	return CheckDigit(digits[:n-1]) == int(digits[n-1]-'0')
}

// expandUPCE converts an 8-digit UPC-E code to its 12-digit UPC-A form
func expandUPCE(code string) (string, bool) {
	if code[0] != '0' && code[0] != '1' {
		return "", false
	}
	ns, d, check := code[:1], code[1:7], code[7:]

	var body string
	switch d[5] {
	case '0', '1', '2':
		body = d[0:2] + d[5:6] + "0000" + d[2:5]
	case '3':
		body = d[0:3] + "00000" + d[3:5]
	case '4':
		body = d[0:4] + "00000" + d[4:5]
	default:
		body = d[0:5] + "0000" + d[5:6]
	}
	return ns + body + check, true
}
