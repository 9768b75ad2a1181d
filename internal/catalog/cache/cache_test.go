package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

type page struct {
	IDs   []int64 `json:"ids"`
	Total int64   `json:"total"`
}

func TestRedisClient_Get(t *testing.T) {
	const key = "search:v0:newest|1||"

	tests := []struct {
		name    string
		doMock  func(mock redismock.ClientMock)
		want    page
		wantErr error
		anyErr  bool
	}{
		{
			name: "hit",
			doMock: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(`{"ids":[3,1],"total":2}`)
			},
			want: page{IDs: []int64{3, 1}, Total: 2},
		},
		{
			name: "miss",
			doMock: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).RedisNil()
			},
			wantErr: ErrNotExists,
		},
		{
			name: "connection error",
			doMock: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetErr(redis.ErrClosed)
			},
			wantErr: redis.ErrClosed,
		},
		{
			name: "corrupt payload",
			doMock: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(`not json`)
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			tt.doMock(mock)
			c := NewRedisClient[page](db)

			got, err := c.Get(context.Background(), key)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v, got %v", tt.wantErr, err)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Fatalf("value mismatch (-want +got):\n%s", diff)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestRedisClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisClient[page](db)

	mock.ExpectSet("k", `{"ids":[7],"total":1}`, 30*time.Second).SetVal("OK")

	if err := c.Set(context.Background(), "k", page{IDs: []int64{7}, Total: 1}, 30*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInMemoryClient(t *testing.T) {
	c := NewInMemoryClient[page]()
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotExists) {
		t.Fatalf("want ErrNotExists, got %v", err)
	}

	want := page{IDs: []int64{1, 2}, Total: 10}
	if err := c.Set(ctx, "live", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "live")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	if err := c.Set(ctx, "short", want, time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrNotExists) {
		t.Fatalf("want expired entry to be gone, got %v", err)
	}
}
