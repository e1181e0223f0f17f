package workspace

type queryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type page struct {
	ID         string                   `json:"id"`
	Properties map[string]propertyValue `json:"properties"`
}

// propertyValue is both the read and the write shape of a page property.
type propertyValue struct {
	Type     string        `json:"type,omitempty"`
	Title    []richText    `json:"title,omitempty"`
	RichText []richText    `json:"rich_text,omitempty"`
	Select   *option       `json:"select,omitempty"`
	Status   *option       `json:"status,omitempty"`
	Date     *dateValue    `json:"date,omitempty"`
	Relation []relationRef `json:"relation,omitempty"`
}

type richText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *textContent `json:"text,omitempty"`
}

type textContent struct {
	Content string `json:"content"`
}

type option struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

type relationRef struct {
	ID string `json:"id"`
}

type createPageRequest struct {
	Parent     parentRef                `json:"parent"`
	Properties map[string]propertyValue `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties map[string]propertyValue `json:"properties"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
