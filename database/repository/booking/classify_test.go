package bookingRepo

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyMongoError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), ErrNotFound},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000"}}}, ErrAlreadyExists},
		{"transient label", mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}, ErrConflict},
		{"commit result unknown", mongo.CommandError{Code: 50, Name: "MaxTimeMSExpired", Labels: []string{"UnknownTransactionCommitResult"}}, ErrConflict},
		{"write conflict", mongo.CommandError{Code: 112, Name: "WriteConflict"}, ErrConflict},
		{"other server error", mongo.CommandError{Code: 13, Name: "Unauthorized"}, ErrUnavailable},
		{"plain error", errors.New("socket closed"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMongoError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyMongoError() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(got.Error(), tt.err.Error()) {
				t.Errorf("classifyMongoError() = %q, lost the cause %q", got, tt.err)
			}
		})
	}
}

func TestClassifyFirestoreError(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.NotFound, ErrNotFound},
		{codes.AlreadyExists, ErrAlreadyExists},
		{codes.Aborted, ErrConflict},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", status.Error(tt.code, "x"))
			if got := classifyFirestoreError(err); !errors.Is(got, tt.want) {
				t.Errorf("classifyFirestoreError(%v) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
