package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"opera_mock/internal/domain"
)

// ImportService copies property content from a ContentSource into the store.
type ImportService struct {
	src   domain.ContentSource
	repo  domain.PropertyRepository
	cache domain.Cache
}

func NewImportService(src domain.ContentSource, r domain.PropertyRepository, cache domain.Cache) *ImportService {
	return &ImportService{src: src, repo: r, cache: cache}
}

// ImportReport counts the outcome of one Run.
type ImportReport struct {
	Imported  int
	RoomTypes int
	Missed    int
	Failed    int
}

// missStatus classifies source errors that are recorded and skipped rather than returned.
func missStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return 404, "not found", true
	case errors.Is(err, domain.ErrForbidden):
		return 403, "inactive", true
	case errors.Is(err, domain.ErrInvalidInput):
		return 422, "unprocessable", true
	}
	return 0, "", false
}

// ImportHotel upserts one property and its room types. Properties the source does not
// have, or refuses to serve, are logged as misses and cached views of them are dropped.
// It reports the number of room types written; a miss reports -1.
func (s *ImportService) ImportHotel(ctx context.Context, hotelCode string) (int, error) {
	// 1) Parent first: room types reference it by surrogate id.
	raw, err := s.src.GetProperty(ctx, hotelCode)
	if err != nil {
		if status, reason, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, hotelCode, status, reason)
			s.invalidate(ctx, hotelCode)
			return -1, nil
		}
		return 0, err
	}
	p, err := mapRawProperty(raw)
	if err != nil {
		_ = s.repo.LogMiss(ctx, hotelCode, 422, err.Error())
		return -1, nil
	}
	saved, err := s.repo.UpsertProperty(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("upsert property %s: %w", hotelCode, err)
	}
	s.invalidate(ctx, saved.HotelCode)

	// 2) Room types: best-effort on misses, other errors surface.
	rawRooms, err := s.src.GetRoomTypes(ctx, saved.HotelCode)
	if err != nil {
		if status, _, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, saved.HotelCode, status, "roomTypes")
			return 0, nil
		}
		return 0, err
	}
	n := 0
	for _, m := range rawRooms {
		rt, ok := mapRawRoomType(saved.ID, m)
		if !ok {
			log.Warn().Str("hotel_code", saved.HotelCode).Msg("room type without code skipped")
			continue
		}
		if _, err := s.repo.UpsertRoomType(ctx, rt); err != nil {
			return n, fmt.Errorf("upsert room type %s/%s: %w", saved.HotelCode, rt.Code, err)
		}
		n++
	}
	return n, nil
}

// Run imports the given codes, or every code the source lists when codes is empty,
// with at most workers imports in flight.
func (s *ImportService) Run(ctx context.Context, codes []string, workers int) (ImportReport, error) {
	if len(codes) == 0 {
		var err error
		if codes, err = s.src.HotelCodes(ctx); err != nil {
			return ImportReport{}, fmt.Errorf("list hotel codes: %w", err)
		}
	}
	if workers <= 0 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		rep ImportReport
		wg  sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(workers))
	for _, code := range codes {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := s.ImportHotel(ctx, code)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				rep.Failed++
				log.Warn().Str("hotel_code", code).Err(err).Msg("import failed")
			case n < 0:
				rep.Missed++
				log.Info().Str("hotel_code", code).Msg("import miss")
			default:
				rep.Imported++
				rep.RoomTypes += n
				log.Debug().Str("hotel_code", code).Int("room_types", n).Msg("import ok")
			}
		}(code)
	}
	wg.Wait()
	return rep, nil
}

func (s *ImportService) invalidate(ctx context.Context, hotelCode string) {
	invalidateProperty(ctx, s.cache, hotelCode)
}
