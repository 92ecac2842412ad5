package protocol

type Welcome struct {
	ViewerID string  `json:"viewerId"`
	Sim      string  `json:"sim"`
	TickMs   float64 `json:"tickMs"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

type State struct {
	Tick   int            `json:"tick"`
	Paused bool           `json:"paused,omitempty"`
	Bodies []BodySnapshot `json:"bodies"`
}

type BodySnapshot struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	A      float64 `json:"a,omitempty"` // rotation, radians
	Sprite string  `json:"sprite,omitempty"`
}

type Error struct {
	Message string `json:"message"`
}
