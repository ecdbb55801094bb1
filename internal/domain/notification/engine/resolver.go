package engine

import (
	"context"

	"github.com/pandamarket/backend/internal/repository"
)

// Resolver turns a domain mutation into the set of users to notify. The
// acting user is always excluded, nobody gets notified about their own
// action.
type Resolver struct {
	favoriteRepo repository.FavoriteRepository
}

func NewResolver(favoriteRepo repository.FavoriteRepository) *Resolver {
	return &Resolver{favoriteRepo: favoriteRepo}
}

// CommentRecipients resolves who to notify about a new comment on a post
// owned by ownerID.
func (r *Resolver) CommentRecipients(ownerID, actorID string) []string {
	if ownerID == actorID {
		return nil
	}

	return []string{ownerID}
}

// PriceChangeRecipients resolves every user who favorited the product,
// minus the actor.
func (r *Resolver) PriceChangeRecipients(ctx context.Context, productID, actorID string) ([]string, error) {
	favorites, err := r.favoriteRepo.GetListByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.UserID == actorID {
			continue
		}

		recipients = append(recipients, favorite.UserID)
	}

	return recipients, nil
}
