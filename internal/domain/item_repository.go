package domain

import "context"

//go:generate mockgen -source=item_repository.go -destination=item_repository_mock.go -package=domain

type ItemRepository interface {
	// FetchItemsInWindow returns items whose do or due start falls inside
	// the window, bounds inclusive.
	FetchItemsInWindow(ctx context.Context, window TimeWindow) ([]Item, error)
	FetchAllItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, item NewItem) (*Item, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
