package http

type CreateGameRequest struct {
	Depth       int   `json:"depth"`
	Seed        int64 `json:"seed"`
	ShuffleRoot bool  `json:"shuffle_root"`
}

type MoveRequest struct {
	Move string `json:"move" binding:"required"`
}

type BlockRequest struct {
	Cell string `json:"cell" binding:"required"`
}

type ReplayRequest struct {
	Moves []string `json:"moves" binding:"required"`
}
