// Package pdftext wraps the external pdftotext tool used to pull plaintext
// out of statute PDF renditions.
package pdftext
