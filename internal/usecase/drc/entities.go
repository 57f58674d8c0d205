package drc

import (
	"time"

	domain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
)

type OwnerDTO struct {
	UserID ident.ID `json:"user_id"`
	Area   uint64   `json:"area"`
}

type DrcDTO struct {
	ID                    ident.ID   `json:"id"`
	ApplicationID         ident.ID   `json:"application_id"`
	NoticeID              ident.ID   `json:"notice_id"`
	Status                uint8      `json:"status"`
	StatusName            string     `json:"status_name"`
	FarCredited           uint64     `json:"far_credited"`
	FarAvailable          uint64     `json:"far_available"`
	AreaSurrendered       uint64     `json:"area_surrendered"`
	CircleRateSurrendered uint64     `json:"circle_rate_surrendered"`
	CircleRateUtilization uint64     `json:"circle_rate_utilization"`
	Owners                []OwnerDTO `json:"owners"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TransferDTO is one entry of a source record's transfer history.
type TransferDTO struct {
	ApplicationID ident.ID  `json:"application_id"`
	DerivedDrcID  ident.ID  `json:"derived_drc_id"`
	Far           uint64    `json:"far"`
	BuyerCount    int       `json:"buyer_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToDTO maps a stored record. A nil record maps to the zero DTO.
func ToDTO(d *domain.DRC) DrcDTO {
	if d == nil {
		return DrcDTO{Owners: []OwnerDTO{}}
	}
	owners := make([]OwnerDTO, len(d.Owners))
	for i, o := range d.Owners {
		owners[i] = OwnerDTO{UserID: o.OwnerID, Area: o.AreaShare}
	}
	return DrcDTO{
		ID:                    d.ID,
		ApplicationID:         d.ApplicationID,
		NoticeID:              d.NoticeID,
		Status:                uint8(d.Status),
		StatusName:            d.Status.String(),
		FarCredited:           d.FarCredited,
		FarAvailable:          d.FarAvailable,
		AreaSurrendered:       d.AreaSurrendered,
		CircleRateSurrendered: d.CircleRateSurrendered,
		CircleRateUtilization: d.CircleRateUtilization,
		Owners:                owners,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

// Record is the caller-supplied content of a create or update.
type Record struct {
	ApplicationID         ident.ID
	NoticeID              ident.ID
	Status                domain.Status
	FarCredited           uint64
	FarAvailable          uint64
	AreaSurrendered       uint64
	CircleRateSurrendered uint64
	CircleRateUtilization uint64
	Owners                []OwnerDTO
}

func (r Record) toDomain(id ident.ID) *domain.DRC {
	owners := make([]domain.Owner, len(r.Owners))
	for i, o := range r.Owners {
		owners[i] = domain.Owner{OwnerID: o.UserID, AreaShare: o.Area}
	}
	return &domain.DRC{
		ID:                    id,
		ApplicationID:         r.ApplicationID,
		NoticeID:              r.NoticeID,
		Status:                r.Status,
		FarCredited:           r.FarCredited,
		FarAvailable:          r.FarAvailable,
		AreaSurrendered:       r.AreaSurrendered,
		CircleRateSurrendered: r.CircleRateSurrendered,
		CircleRateUtilization: r.CircleRateUtilization,
		Owners:                owners,
	}
}
