package repository

import (
	"context"

	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
)

const insertNoteSQL = `
	INSERT INTO staff_notes (id, shop_id, date, content, created_at)
	VALUES ($1, $2, $3::date, $4, $5)`

type BulletinRepository struct{}

func NewBulletinRepository() *BulletinRepository {
	return &BulletinRepository{}
}

func (r *BulletinRepository) Post(ctx context.Context, tx db.DBTX, n *bulletin.Note) error {
	if _, err := tx.Exec(ctx, insertNoteSQL, n.ID(), n.ShopID(), n.Date(), n.Content(), n.CreatedAt()); err != nil {
		return infra.WrapRepoErr("failed to post note", err)
	}
	return nil
}
