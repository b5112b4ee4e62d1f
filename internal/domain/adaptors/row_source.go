package adaptors

import "seo_meta_audit/internal/domain/models"

type RowSource interface {
	Rows() ([]models.Row, error)
}
