package domain

import "time"

// CacheEntry is a stored translation for a given input and engine.
type CacheEntry struct {
	ID          int64     `json:"id"`
	SourceText  string    `json:"source_text"`
	SrcLang     string    `json:"src_lang"`
	TgtLang     string    `json:"tgt_lang"`
	Provider    string    `json:"provider"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}
