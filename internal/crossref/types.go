package crossref

// Work is the raw registry record for one DOI, as returned by the Crossref
// works API. It is an input to metadata resolution, not a domain entity:
// nothing past the resolver's boundary ever sees one.
type Work struct {
	Status  string   `json:"status"`
	Message *Message `json:"message"`
}

// Message is the payload envelope of a works response. Crossref wraps
// single-valued fields like title in arrays; the resolver takes the first
// element.
type Message struct {
	DOI            string   `json:"DOI"`
	Type           string   `json:"type"`
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	Publisher      string   `json:"publisher"`
	Author         []Author `json:"author"`
	Issued         Date     `json:"issued"`
}

// Author is one entry of a work's author list, in citation order.
type Author struct {
	Given    string `json:"given"`
	Family   string `json:"family"`
	Sequence string `json:"sequence,omitempty"`
}

// Date is a Crossref partial date. DateParts holds [[year, month, day]] with
// month and day optional.
type Date struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the first date-part year, or 0 if the date is empty.
func (d Date) Year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}
