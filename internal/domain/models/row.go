package models

// Row is one record of the audit table.
type Row struct {
	Line                int
	URL                 string
	ExpectedTitle       string
	ExpectedDescription string
}
