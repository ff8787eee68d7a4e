package server

import "BitwoodRPG/internal/game"

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type frameDTO struct {
	Now      float64     `json:"now"`
	CamX     float64     `json:"cam_x"`
	CamY     float64     `json:"cam_y"`
	TileSize float64     `json:"tile_size"`
	Tiles    []tileDTO   `json:"tiles"`
	Sprites  []spriteDTO `json:"sprites"`
	Prompt   string      `json:"prompt,omitempty"`
	Status   []string    `json:"status,omitempty"`
	Dialogue *panelDTO   `json:"dialogue,omitempty"`
}

type tileDTO struct {
	TX   int     `json:"tx"`
	TY   int     `json:"ty"`
	Code string  `json:"code"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type spriteDTO struct {
	Name  string   `json:"name"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Lines []string `json:"lines"`
	Color string   `json:"color,omitempty"`
	Self  bool     `json:"self,omitempty"`
}

type panelDTO struct {
	Speaker string           `json:"speaker"`
	Text    string           `json:"text"`
	Choices []panelChoiceDTO `json:"choices"`
	Hint    string           `json:"hint"`
}

type panelChoiceDTO struct {
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

func frameToDTO(f *game.Frame, tileSize float64) frameDTO {
	dto := frameDTO{
		Now:      f.Now,
		CamX:     f.Camera.X,
		CamY:     f.Camera.Y,
		TileSize: tileSize,
		Tiles:    make([]tileDTO, 0, len(f.Tiles)),
		Sprites:  make([]spriteDTO, 0, len(f.Sprites)),
		Prompt:   f.Prompt,
		Status:   f.Status,
	}
	for _, t := range f.Tiles {
		dto.Tiles = append(dto.Tiles, tileDTO{
			TX: t.TX, TY: t.TY, Code: string(t.Code), X: t.X, Y: t.Y,
		})
	}
	for _, s := range f.Sprites {
		dto.Sprites = append(dto.Sprites, spriteDTO{
			Name: s.Name, X: s.X, Y: s.Y, Lines: s.Lines, Color: s.Color, Self: s.Self,
		})
	}
	if f.Dialogue != nil {
		panel := &panelDTO{
			Speaker: f.Dialogue.Speaker,
			Text:    f.Dialogue.Text,
			Hint:    f.Dialogue.Hint,
			Choices: make([]panelChoiceDTO, 0, len(f.Dialogue.Choices)),
		}
		for _, c := range f.Dialogue.Choices {
			panel.Choices = append(panel.Choices, panelChoiceDTO{Label: c.Label, Selected: c.Selected})
		}
		dto.Dialogue = panel
	}
	return dto
}
