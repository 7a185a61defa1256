package domain

var (
	MessageLikeAdded   = "like added"
	MessageLikeRemoved = "like removed"

	MessageFailedToggleLike = "failed to toggle like"
)

type (
	// LikeState is the outcome of one toggle: the pair's new state and the recipe's counter.
	LikeState struct {
		Liked bool
		Likes int
	}

	LikeResponse struct {
		Message            string `json:"message"`
		Liked              bool   `json:"liked"`
		Likes              int    `json:"likes"`
		LikedByCurrentUser bool   `json:"liked_by_current_user"`
	}
)
