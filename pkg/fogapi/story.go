package fogapi

import "net/http"

// StoryListRequest pages and filters stories. Unlike the other lists it is
// sent as a POST body.
type StoryListRequest struct {
	OrderField            string `json:"order_field"`
	OrderType             string `json:"order_type"`
	Page                  int    `json:"page"`
	Count                 int    `json:"count"`
	Keyword               string `json:"keyword"`
	HasContentFile        *bool  `json:"has_content_file,omitempty"`
	HasContentFileChinese *bool  `json:"has_content_file_chinese,omitempty"`
}

// Story holds the Chinese edition fields an editor can change.
type Story struct {
	ID                 int64  `json:"id"`
	TitleChinese       string `json:"title_chinese"`
	DetailChinese      string `json:"detail_chinese"`
	ContentFileChinese string `json:"content_file_chinese"`
}

// ListStories returns a page of stories.
func ListStories(req StoryListRequest) *Request {
	return &Request{Method: http.MethodPost, Path: "/story/list", Body: req}
}

// ModifyStory updates the story s.ID.
func ModifyStory(s Story) *Request {
	return &Request{Method: http.MethodPost, Path: "/story/modify", Body: s}
}
