package service

import (
	"context"

	"github.com/google/uuid"

	"sabana_backend/internals/features/school/sabana/dto"
)

// SheetService fronts the assembler with the cache: serve the cached sábana
// when present, otherwise rebuild from source and repopulate.
type SheetService struct {
	Assembler *AssemblerService
	Cache     *SheetCache
}

func NewSheet(assembler *AssemblerService, cache *SheetCache) *SheetService {
	return &SheetService{Assembler: assembler, Cache: cache}
}

// GetSheet returns the sábana for (level, cycle) within the tenant. The bool
// reports whether it came from the cache.
func (s *SheetService) GetSheet(ctx context.Context, schoolID, levelID, cycleID uuid.UUID) (*dto.SabanaResponse, bool, error) {
	if sheet, ok := s.Cache.Get(ctx, schoolID, levelID, cycleID); ok {
		return sheet, true, nil
	}

	sheet, err := s.Assembler.BuildSheet(ctx, schoolID, levelID, cycleID)
	if err != nil {
		return nil, false, err
	}

	s.Cache.Put(ctx, schoolID, levelID, cycleID, sheet)
	return sheet, false, nil
}
