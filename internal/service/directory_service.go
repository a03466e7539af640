package service

import (
	"context"
	"time"

	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"

	gocache "github.com/patrickmn/go-cache"
)

const regionCacheKey = "directory:regions"

type IDirectoryService interface {
	List(ctx context.Context, query *dto.DirectoryQuery) (*dto.DirectoryListResponse, error)
	Regions(ctx context.Context) ([]*dto.RegionCountResponse, error)
}

// directoryService is the public read model. It never exposes stored flags
// directly: rows are classified into display categories at read time, and
// internal fields (reasons, billing dates, contacts) stay out of the payload.
type directoryService struct {
	spaRepo contract.SpaRepository
	cache   *gocache.Cache
	logger  logger.ILogger
}

func NewDirectoryService(spaRepo contract.SpaRepository, log logger.ILogger) IDirectoryService {
	return &directoryService{
		spaRepo: spaRepo,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		logger:  log,
	}
}

// Classify derives the display category. The second return is false for rows
// that belong to no public category (pending, rejected and suspended spas
// without a blacklist mark).
func Classify(spa *entity.Spa) (specification.Category, bool) {
	if spa.IsBlacklisted() {
		return specification.CategoryBlacklisted, true
	}
	if spa.Status != entity.SpaStatusVerified {
		return "", false
	}
	if spa.AnnualFeePaid {
		return specification.CategoryVerified, true
	}
	return specification.CategoryUnverified, true
}

func (s *directoryService) List(ctx context.Context, query *dto.DirectoryQuery) (*dto.DirectoryListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	specs := []specification.Specification{}
	if query.Category != "" {
		specs = append(specs, specification.SpaCategory{Category: specification.Category(query.Category)})
	} else {
		specs = append(specs, specification.PubliclyListable{})
	}
	if query.Search != "" {
		specs = append(specs, specification.SpaSearchQuery{Query: query.Search})
	}
	if query.Region != "" {
		specs = append(specs, specification.ByRegion{Region: query.Region})
	}

	total, err := s.spaRepo.Count(ctx, specs...)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	rows, err := s.spaRepo.FindAll(ctx, append(specs,
		specification.OrderBy{Field: "name", Desc: false},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)...)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	items := make([]*dto.DirectorySpaResponse, 0, len(rows))
	for _, row := range rows {
		category, ok := Classify(row)
		if !ok {
			continue
		}
		items = append(items, &dto.DirectorySpaResponse{
			Id:              row.Id,
			ReferenceNumber: row.ReferenceNumber,
			Name:            row.Name,
			Address:         row.Address,
			Region:          row.Region,
			Category:        string(category),
		})
	}

	return &dto.DirectoryListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Regions serves the directory's region facet from a short-lived cache; the
// aggregation is a full-table group-by and the data changes rarely.
func (s *directoryService) Regions(ctx context.Context) ([]*dto.RegionCountResponse, error) {
	if cached, found := s.cache.Get(regionCacheKey); found {
		return cached.([]*dto.RegionCountResponse), nil
	}

	counts, err := s.spaRepo.AggregateRegions(ctx, specification.PubliclyListable{})
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	out := make([]*dto.RegionCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, &dto.RegionCountResponse{Region: c.Region, Count: c.Count})
	}

	s.cache.Set(regionCacheKey, out, gocache.DefaultExpiration)
	return out, nil
}
