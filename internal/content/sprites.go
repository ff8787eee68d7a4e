package content

import "BitwoodRPG/internal/game"

// ASCII sprite art for the default campaign. Two frames each; the
// second frame wiggles the feet (or the Elder's eyes) for a cheap idle
// animation.

func playerSprite() game.Sprite {
	return game.Sprite{
		Color:     "#e6e6ff",
		FrameTime: 0.14,
		Frames: [][]string{
			{
				`  /\  `,
				` (..) `,
				` /||\ `,
				`  /\  `,
			},
			{
				`  /\  `,
				` (..) `,
				` /||\ `,
				`  \/  `,
			},
		},
	}
}

func elderSprite() game.Sprite {
	return game.Sprite{
		Color:     "#ffdca0",
		FrameTime: 0.25,
		Frames: [][]string{
			{
				`  __  `,
				` (oo) `,
				`/|__|\`,
				` /  \ `,
			},
			{
				`  __  `,
				` (oO) `,
				`/|__|\`,
				` /  \ `,
			},
		},
	}
}

func gatekeeperSprite() game.Sprite {
	return game.Sprite{
		Color:     "#aaffaa",
		FrameTime: 0.22,
		Frames: [][]string{
			{
				` [==] `,
				` (..) `,
				` /||\ `,
				`  / \ `,
			},
			{
				` [==] `,
				` (..) `,
				` /||\ `,
				`  \ / `,
			},
		},
	}
}
