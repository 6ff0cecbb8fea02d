package pdf

import "regexp"

// doiPattern matches the canonical DOI shape: the "10." prefix, a short
// digits-and-dots registrant code, a slash, then a body of URI-safe
// characters ending in an alphanumeric. This is a heuristic: a DOI split
// across a line break or rendered as an image will be missed, and
// DOI-shaped noise will match.
var doiPattern = regexp.MustCompile(`10[.][\d.]{1,15}/[-._;:()/A-Za-z0-9<>]+[A-Za-z0-9]`)

// FindDOI returns the first DOI-shaped substring in text, in document order,
// or "" if none is found.
func FindDOI(text string) string {
	return doiPattern.FindString(text)
}

// ExtractDOI extracts a DOI from the first page of the PDF at path.
// An unreadable file is an error; a readable file with no DOI is "".
func ExtractDOI(path string) (string, error) {
	text, err := FirstPageText(path)
	if err != nil {
		return "", err
	}
	return FindDOI(text), nil
}
