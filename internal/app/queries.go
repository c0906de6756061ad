package app

import (
	"context"
	"fmt"
	"time"

	"opera_mock/internal/domain"
)

// ContentService serves property content with cache-aside on the detail view and the
// default first page of the summary list.
type ContentService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewContentService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *ContentService {
	return &ContentService{repo: r, cache: c, cacheTTL: ttl}
}

func propertyKey(hotelCode string) string { return "property:" + hotelCode }

func summaryKey(pg domain.Page) string { return fmt.Sprintf("properties:%d:%d", pg.Limit, pg.Offset) }

var defaultSummaryPage = domain.Page{Limit: DefaultContentLimit}

func (s *ContentService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, _ := s.cache.Get(ctx, key, dst)
	return ok
}

func (s *ContentService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
}

func (s *ContentService) ListHotels(ctx context.Context, pg domain.Page) (PropertyInfoSummaryResponse, error) {
	cacheable := pg == defaultSummaryPage
	var out PropertyInfoSummaryResponse
	if cacheable && s.cacheGet(ctx, summaryKey(pg), &out) {
		return out, nil
	}

	props, total, err := fetchPage(ctx, pg,
		func(ctx context.Context) ([]domain.Property, error) { return s.repo.ListProperties(ctx, pg) },
		s.repo.CountProperties,
	)
	if err != nil {
		return PropertyInfoSummaryResponse{}, err
	}
	out = PropertyInfoSummaryResponse{
		HasMore:      hasMore(pg, len(props), total),
		TotalResults: total,
		Limit:        pg.Limit,
		Count:        len(props),
		Offset:       pg.Offset,
		Hotels:       mapSlice(props, toPropertySnippet),
	}
	if cacheable {
		s.cacheSet(ctx, summaryKey(pg), out)
	}
	return out, nil
}

func (s *ContentService) GetHotel(ctx context.Context, hotelCode string) (PropertyInfoResponse, error) {
	key := propertyKey(hotelCode)
	var out PropertyInfoResponse
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}
	p, err := s.repo.GetPropertyByCode(ctx, hotelCode)
	if err != nil {
		return PropertyInfoResponse{}, err
	}
	out = PropertyInfoResponse{PropertyInfo: toPropertyInfo(p)}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// ListRoomTypes returns NotFound for an unknown hotel instead of an empty list.
func (s *ContentService) ListRoomTypes(ctx context.Context, q domain.RoomTypeQuery, includeAmenities bool) (RoomTypesResponse, error) {
	if _, err := s.repo.GetPropertyByCode(ctx, q.HotelCode); err != nil {
		return RoomTypesResponse{}, err
	}
	rts, total, err := fetchPage(ctx, q.Page,
		func(ctx context.Context) ([]domain.RoomType, error) { return s.repo.ListRoomTypes(ctx, q) },
		func(ctx context.Context) (int, error) { return s.repo.CountRoomTypes(ctx, q) },
	)
	if err != nil {
		return RoomTypesResponse{}, err
	}
	views := make([]RoomTypeView, 0, len(rts))
	for _, rt := range rts {
		views = append(views, toRoomTypeView(rt, includeAmenities))
	}
	return RoomTypesResponse{
		RoomTypes:    views,
		Count:        len(views),
		HasMore:      hasMore(q.Page, len(views), total),
		Limit:        q.Page.Limit,
		Offset:       q.Page.Offset,
		TotalResults: total,
	}, nil
}

// ReplaceHotel overwrites every content field of an existing property.
func (s *ContentService) ReplaceHotel(ctx context.Context, hotelCode string, req ReplacePropertyRequest) (PropertyInfoResponse, error) {
	cur, err := s.repo.GetPropertyByCode(ctx, hotelCode)
	if err != nil {
		return PropertyInfoResponse{}, err
	}
	p := req.toDomain(hotelCode)
	if p.HotelID == "" {
		p.HotelID = cur.HotelID
	}
	saved, err := s.repo.ReplaceProperty(ctx, p)
	if err != nil {
		return PropertyInfoResponse{}, err
	}
	s.Invalidate(ctx, hotelCode)
	return PropertyInfoResponse{PropertyInfo: toPropertyInfo(saved)}, nil
}

// Invalidate drops cached views that may include the property.
func (s *ContentService) Invalidate(ctx context.Context, hotelCode string) {
	invalidateProperty(ctx, s.cache, hotelCode)
}

func invalidateProperty(ctx context.Context, cache domain.Cache, hotelCode string) {
	if cache == nil {
		return
	}
	_ = cache.Del(ctx, propertyKey(hotelCode))
	_ = cache.Del(ctx, summaryKey(defaultSummaryPage))
}
