package core

import (
	"errors"
	"testing"
)

func TestValidateVerseRecord(t *testing.T) {
	text := "Jesus wept."
	valid := NewVerseRecord("JHN", "KJV", 11, 35, &text)

	tests := []struct {
		name    string
		record  *VerseRecord
		wantErr error
	}{
		{
			name:    "valid record",
			record:  &valid,
			wantErr: nil,
		},
		{
			name: "valid record with absent text",
			record: func() *VerseRecord {
				r := NewVerseRecord("JHN", "KJV", 11, 35, nil)
				return &r
			}(),
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidVerseRecord,
		},
		{
			name: "empty book",
			record: func() *VerseRecord {
				r := NewVerseRecord("", "KJV", 1, 1, nil)
				return &r
			}(),
			wantErr: ErrEmptyBookID,
		},
		{
			name: "empty version",
			record: func() *VerseRecord {
				r := NewVerseRecord("GEN", " ", 1, 1, nil)
				return &r
			}(),
			wantErr: ErrEmptyVersion,
		},
		{
			name: "zero chapter",
			record: func() *VerseRecord {
				r := NewVerseRecord("GEN", "KJV", 0, 1, nil)
				return &r
			}(),
			wantErr: ErrInvalidCoordinate,
		},
		{
			name: "tampered id",
			record: func() *VerseRecord {
				r := NewVerseRecord("GEN", "KJV", 1, 1, nil)
				r.ID = "GEN:1:2:KJV"
				return &r
			}(),
			wantErr: ErrMismatchedID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVerseRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateVerseRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateVerseRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidVerseRecord) {
				t.Errorf("ValidateVerseRecord() error = %v, want wrapped ErrInvalidVerseRecord", err)
			}
		})
	}
}
