package internal

import "ground-control/internal/control_plane/usecases"

type LinkSetupRequest struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baud_rate"`
}

type ToggleRequest struct {
	Pins string `json:"pins"`
}

type PinsRequest struct {
	Pins string `json:"pins"`
}

type PortListResponse struct {
	Data []string `json:"data"`
}

type LinkStatusResponse struct {
	Configured bool   `json:"configured"`
	Port       string `json:"port,omitempty"`
	BaudRate   int    `json:"baud_rate,omitempty"`
	Running    bool   `json:"running"`
	Degraded   bool   `json:"degraded"`
	Pins       string `json:"pins,omitempty"`
	PinWidth   int    `json:"pin_width,omitempty"`
}

func ToLinkStatusResponse(status usecases.LinkStatus) LinkStatusResponse {
	return LinkStatusResponse{
		Configured: status.Configured,
		Port:       status.Port,
		BaudRate:   status.BaudRate,
		Running:    status.Running,
		Degraded:   status.Degraded,
		Pins:       status.Pins,
		PinWidth:   status.PinWidth,
	}
}
