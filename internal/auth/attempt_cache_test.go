package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("LoginAttemptCache", func() {
	var cache *LoginAttemptCache

	ginkgo.BeforeEach(func() {
		cache = NewLoginAttemptCache(3, 100, 15*time.Minute)
	})

	ginkgo.Describe("RecordFailure", func() {
		ginkgo.It("should start counting at one", func() {
			// When
			cache.RecordFailure("budi")

			// Then
			gomega.Expect(cache.Attempts("budi")).To(gomega.Equal(1))
		})

		ginkgo.It("should increment on each failure", func() {
			// When
			cache.RecordFailure("budi")
			cache.RecordFailure("budi")

			// Then
			gomega.Expect(cache.Attempts("budi")).To(gomega.Equal(2))
		})

		ginkgo.It("should track usernames independently", func() {
			// When
			cache.RecordFailure("budi")
			cache.RecordFailure("rina")
			cache.RecordFailure("rina")

			// Then
			gomega.Expect(cache.Attempts("budi")).To(gomega.Equal(1))
			gomega.Expect(cache.Attempts("rina")).To(gomega.Equal(2))
		})

		ginkgo.It("should not lose increments under concurrent failures", func() {
			// Given
			const goroutines = 50
			var wg sync.WaitGroup
			wg.Add(goroutines)

			// When
			for i := 0; i < goroutines; i++ {
				go func() {
					defer wg.Done()
					cache.RecordFailure("budi")
				}()
			}
			wg.Wait()

			// Then
			gomega.Expect(cache.Attempts("budi")).To(gomega.Equal(goroutines))
		})
	})

	ginkgo.Describe("Clear", func() {
		ginkgo.It("should reset the counter", func() {
			// Given
			cache.RecordFailure("budi")
			cache.RecordFailure("budi")

			// When
			cache.Clear("budi")

			// Then
			gomega.Expect(cache.Attempts("budi")).To(gomega.BeZero())
		})

		ginkgo.It("should be a no-op for untracked usernames", func() {
			// When
			cache.Clear("ghost")

			// Then
			gomega.Expect(cache.Attempts("ghost")).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("HasExceededLimit", func() {
		ginkgo.It("should be false for an untracked username", func() {
			gomega.Expect(cache.HasExceededLimit("ghost")).To(gomega.BeFalse())
		})

		ginkgo.It("should be false below the threshold", func() {
			// When
			cache.RecordFailure("budi")
			cache.RecordFailure("budi")

			// Then
			gomega.Expect(cache.HasExceededLimit("budi")).To(gomega.BeFalse())
		})

		ginkgo.It("should be true at the threshold", func() {
			// When
			cache.RecordFailure("budi")
			cache.RecordFailure("budi")
			cache.RecordFailure("budi")

			// Then
			gomega.Expect(cache.HasExceededLimit("budi")).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("expiry", func() {
		ginkgo.It("should forget entries after the window elapses", func() {
			// Given a very short window
			short := NewLoginAttemptCache(3, 100, 20*time.Millisecond)
			short.RecordFailure("budi")
			short.RecordFailure("budi")
			short.RecordFailure("budi")
			gomega.Expect(short.HasExceededLimit("budi")).To(gomega.BeTrue())

			// Then
			gomega.Eventually(func() bool {
				return short.HasExceededLimit("budi")
			}, time.Second, 10*time.Millisecond).Should(gomega.BeFalse())
			gomega.Expect(short.Attempts("budi")).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("capacity", func() {
		ginkgo.It("should evict the least recently used username when full", func() {
			// Given a cache that holds two entries
			small := NewLoginAttemptCache(3, 2, 15*time.Minute)
			small.RecordFailure("first")
			small.RecordFailure("second")

			// Keep "first" recently used so "second" is the eviction victim.
			gomega.Expect(small.Attempts("first")).To(gomega.Equal(1))

			// When a third username arrives
			small.RecordFailure("third")

			// Then
			gomega.Expect(small.Attempts("second")).To(gomega.BeZero())
			gomega.Expect(small.Attempts("first")).To(gomega.Equal(1))
			gomega.Expect(small.Attempts("third")).To(gomega.Equal(1))
		})

		ginkgo.It("should stay bounded under many distinct usernames", func() {
			// Given
			small := NewLoginAttemptCache(3, 10, 15*time.Minute)

			// When
			for i := 0; i < 100; i++ {
				small.RecordFailure(fmt.Sprintf("user-%d", i))
			}

			// Then the newest entry is still tracked
			gomega.Expect(small.Attempts("user-99")).To(gomega.Equal(1))
		})
	})

	ginkgo.Describe("construction defaults", func() {
		ginkgo.It("should fall back to defaults for non-positive settings", func() {
			// When
			defaulted := NewLoginAttemptCache(0, 0, 0)
			for i := 0; i < DefaultMaxLoginAttempts-1; i++ {
				defaulted.RecordFailure("budi")
			}

			// Then
			gomega.Expect(defaulted.HasExceededLimit("budi")).To(gomega.BeFalse())
			defaulted.RecordFailure("budi")
			gomega.Expect(defaulted.HasExceededLimit("budi")).To(gomega.BeTrue())
		})
	})
})
