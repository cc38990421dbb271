package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// ListCartItems returns the session's rows, oldest first, each joined with its
// product. A row whose product no longer exists is returned with a nil Product.
func (s *Store) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "session_id", Value: sessionID}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: productsCollection},
			{Key: "localField", Value: "product_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.collection(cartItemsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []cartItemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}

	out := make([]models.CartItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// IncrementCartItem adds one unit of productID to the session's cart. The
// first add inserts a row with quantity 1; later adds increment it in place.
// Two concurrent first adds race on the unique (session_id, product_id)
// index; the loser retries once and takes the increment path.
func (s *Store) IncrementCartItem(ctx context.Context, sessionID, productID string) error {
	err := s.incrementCartItem(ctx, sessionID, productID)
	if mongo.IsDuplicateKeyError(err) {
		err = s.incrementCartItem(ctx, sessionID, productID)
	}
	if err != nil {
		return fmt.Errorf("increment cart item %s: %w", productID, err)
	}
	return nil
}

func (s *Store) incrementCartItem(ctx context.Context, sessionID, productID string) error {
	now := s.now()
	filter := bson.D{
		{Key: "session_id", Value: sessionID},
		{Key: "product_id", Value: productID},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "quantity", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: uuid.NewString()},
			{Key: "created_at", Value: now},
		}},
	}

	_, err := s.collection(cartItemsCollection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

// SetCartItemQuantity overwrites the quantity of one row. ErrNotFound means
// no row with that id belongs to the session.
func (s *Store) SetCartItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	filter := bson.D{
		{Key: "_id", Value: itemID},
		{Key: "session_id", Value: sessionID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "quantity", Value: quantity},
		{Key: "updated_at", Value: s.now()},
	}}}

	res, err := s.collection(cartItemsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update cart item %s: %w", itemID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCartItem removes one row. Deleting a row that is already gone is not
// an error.
func (s *Store) DeleteCartItem(ctx context.Context, sessionID, itemID string) error {
	filter := bson.D{
		{Key: "_id", Value: itemID},
		{Key: "session_id", Value: sessionID},
	}
	if _, err := s.collection(cartItemsCollection).DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete cart item %s: %w", itemID, err)
	}
	return nil
}

// SubtractCartItems takes each item's quantity off the matching row and drops
// rows that reach zero. Rows topped up since items were read keep the
// difference; rows already gone are skipped.
func (s *Store) SubtractCartItems(ctx context.Context, sessionID string, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	now := s.now()
	ids := make(bson.A, 0, len(items))
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.D{
				{Key: "_id", Value: item.ID},
				{Key: "session_id", Value: sessionID},
			}).
			SetUpdate(bson.D{
				{Key: "$inc", Value: bson.D{{Key: "quantity", Value: -item.Quantity}}},
				{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
			}))
	}

	coll := s.collection(cartItemsCollection)
	if _, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("subtract cart items: %w", err)
	}

	drained := bson.D{
		{Key: "session_id", Value: sessionID},
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "quantity", Value: bson.D{{Key: "$lte", Value: 0}}},
	}
	if _, err := coll.DeleteMany(ctx, drained); err != nil {
		return fmt.Errorf("drop drained cart items: %w", err)
	}
	return nil
}

func (s *Store) DeleteCartItemsBySession(ctx context.Context, sessionID string) error {
	filter := bson.D{{Key: "session_id", Value: sessionID}}
	if _, err := s.collection(cartItemsCollection).DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("clear cart for session: %w", err)
	}
	return nil
}
