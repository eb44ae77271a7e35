package replay

// FrameInput records pointer input for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	MX int     `json:"mx"`           // MouseX
	MY int     `json:"my"`           // MouseY
	P  bool    `json:"p,omitempty"`  // Pressed
	R  bool    `json:"r,omitempty"`  // Released
	WY float64 `json:"wy,omitempty"` // WheelY
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      uint64       `json:"seed"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
