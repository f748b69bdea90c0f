package remote

import (
	"encoding/json"
	"strings"
)

// ListResult is the paginated envelope every list endpoint returns.
type ListResult[T any] struct {
	Data        []T  `json:"data"`
	TotalCount  int  `json:"totalCount"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	NextPage    *int `json:"nextPage"`
	PrevPage    *int `json:"prevPage"`
}

// Len returns the number of rows held.
func (r ListResult[T]) Len() int { return len(r.Data) }

type wrapped[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Title   string `json:"title"`
}

// parseErrorMessage extracts the human readable message of an error body.
func parseErrorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	for _, m := range []string{eb.Message, eb.Error, eb.Detail, eb.Title} {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return ""
}
