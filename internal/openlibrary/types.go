package openlibrary

// Book matches isbn/{isbn}.json. Every nested field is optional: the API
// may omit it, send null, or send an empty list. Callers must treat all
// three states as "absent".
type Book struct {
	Key           string        `json:"key"`
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle"`
	FullTitle     string        `json:"full_title"`
	Authors       []AuthorRef   `json:"authors"`
	PublishDate   string        `json:"publish_date"`
	Publishers    []string      `json:"publishers"`
	Covers        []int         `json:"covers"`
	Languages     []LanguageRef `json:"languages"`
	ISBN10        []string      `json:"isbn_10"`
	ISBN13        []string      `json:"isbn_13"`
	NumberOfPages int           `json:"number_of_pages"`
}

// AuthorRef is an author reference as embedded in a book record,
// e.g. {"key": "/authors/OL1A"}. The key is opaque and path-like.
type AuthorRef struct {
	Key string `json:"key"`
}

// LanguageRef is a language reference, e.g. {"key": "/languages/eng"}.
type LanguageRef struct {
	Key string `json:"key"`
}

// Author matches authors/{key}.json.
type Author struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	PersonalName string `json:"personal_name"`
	BirthDate    string `json:"birth_date"`
}
