package firestore

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-feed/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func wrap(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
