package speech

import "time"

// Config carries the Volcengine TTS credentials and tuning knobs.
type Config struct {
	AppID       string  `json:"appId"`
	AccessToken string  `json:"accessToken"`
	Voice       string  `json:"voice"`
	Speed       float32 `json:"speed"`
	Volume      float32 `json:"volume"`
	Language    string  `json:"language"`
	Timeout     int     `json:"timeout"` // seconds
}

// Request describes a single synthesis call.
type Request struct {
	SessionID string  `json:"sessionId"`
	Text      string  `json:"text"`
	Voice     string  `json:"voice,omitempty"`
	Speed     float32 `json:"speed,omitempty"`
	Volume    float32 `json:"volume,omitempty"`
	Format    string  `json:"format,omitempty"` // mp3 by default
	Language  string  `json:"language,omitempty"`
}

// Response carries the synthesized audio.
type Response struct {
	SessionID string    `json:"sessionId"`
	AudioData []byte    `json:"-"`
	Duration  int64     `json:"duration"` // milliseconds
	Format    string    `json:"format"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
