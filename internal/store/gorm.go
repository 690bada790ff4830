package store

import (
	"context"
	"errors"
	"time"

	"biowearth/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is one document of any collection. Seq gives the natural order.
type DocumentRow struct {
	Seq        uint64         `gorm:"primaryKey;autoIncrement"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_documents_collection_doc"`
	DocID      string         `gorm:"column:doc_id;size:128;not null;uniqueIndex:idx_documents_collection_doc"`
	Data       datatypes.JSON `gorm:"not null"`
	UpdatedAt  time.Time
}

func (DocumentRow) TableName() string { return "documents" }

// GormBackend stores every collection in a single documents table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend { return &GormBackend{db: db} }

func (g *GormBackend) List(ctx context.Context, c model.Collection) ([]Document, error) {
	var rows []DocumentRow
	if err := g.db.WithContext(ctx).
		Where("collection = ?", string(c)).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		f, err := DecodeFields([]byte(r.Data))
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: r.DocID, Fields: f})
	}
	return out, nil
}

func (g *GormBackend) Insert(ctx context.Context, c model.Collection, id string, body []byte) error {
	row := DocumentRow{Collection: string(c), DocID: id, Data: datatypes.JSON(body)}
	return g.db.WithContext(ctx).Create(&row).Error
}

// Merge is a read-modify-write inside one transaction; both postgres and sqlite
// run it the same way.
func (g *GormBackend) Merge(ctx context.Context, c model.Collection, id string, fields Fields) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRow
		err := tx.Where("collection = ? AND doc_id = ?", string(c), id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		merged, err := mergeBody([]byte(row.Data), fields)
		if err != nil {
			return err
		}
		return tx.Model(&DocumentRow{}).
			Where("seq = ?", row.Seq).
			Updates(map[string]interface{}{"data": datatypes.JSON(merged), "updated_at": time.Now()}).Error
	})
}

func (g *GormBackend) Remove(ctx context.Context, c model.Collection, id string) error {
	return g.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", string(c), id).
		Delete(&DocumentRow{}).Error
}

func (g *GormBackend) Put(ctx context.Context, c model.Collection, id string, body []byte) error {
	row := DocumentRow{Collection: string(c), DocID: id, Data: datatypes.JSON(body)}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormBackend) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
