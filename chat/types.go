package chat

// ChunkResult is one record retrieved from the vector collection, best
// matches first. Score is cosine similarity in [0, 1]-ish territory (1 minus
// cosine distance).
type ChunkResult struct {
	Content string
	URL     string
	Score   float64
}

type Response struct {
	Answer string
	Chunks []ChunkResult
}
