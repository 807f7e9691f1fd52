//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// shared is the MongoDB container reused by every integration test in a package.
var shared struct {
	start     func() (*MongoDBContainer, error)
	setupOnce sync.Once
	started   atomic.Pointer[MongoDBContainer]
}

// GetSharedMongoDB starts the package container on first use and returns it.
// The ctx of the first caller bounds the startup.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.setupOnce.Do(func() {
		shared.start = sync.OnceValues(func() (*MongoDBContainer, error) {
			c, err := SetupMongoDB(ctx)
			if err == nil {
				shared.started.Store(c)
			}
			return c, err
		})
	})
	return shared.start()
}

// CleanupSharedMongoDB terminates the container if one was started.
func CleanupSharedMongoDB(ctx context.Context) error {
	c := shared.started.Swap(nil)
	if c == nil {
		return nil
	}
	return c.Cleanup(ctx)
}

// SetupTestMainWithMongoDB wraps m.Run with the shared container lifecycle:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mongodb container: %v\n", err)
		return 1
	}
	defer func() {
		if err := CleanupSharedMongoDB(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "mongodb container cleanup: %v\n", err)
		}
	}()
	return m.Run()
}

// GetSharedContainerURI panics when GetSharedMongoDB has not succeeded yet.
func GetSharedContainerURI() string {
	c := shared.started.Load()
	if c == nil {
		panic("testutil: shared MongoDB container is not running")
	}
	return c.URI
}

var dbSeq atomic.Uint64

// SanitizeDBName derives a per-test database name. MongoDB rejects
// / \ . space " and $ in names and caps them at 64 bytes.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\. "$`, r) {
			return '_'
		}
		return r
	}, testName)
	if len(name) > 44 {
		name = name[:44]
	}
	return fmt.Sprintf("%s_%d_%d", name, time.Now().Unix()%100000, dbSeq.Add(1))
}
