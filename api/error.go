package api

type Error struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func (e Error) WithDetail(detail string) Error {
	e.Detail = detail
	return e
}
