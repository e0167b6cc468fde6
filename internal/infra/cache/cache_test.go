package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ground-control/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RistrettoCache", func() {
	var (
		cacheInstance *cache.RistrettoCache
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		cacheInstance, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		cacheInstance.Close()
	})

	ginkgo.It("returns a value right after it is set", func() {
		gomega.Expect(cacheInstance.Set(ctx, "snapshot", `{"last_line":"ok"}`, 0)).To(gomega.BeTrue())

		retrieved, found := cacheInstance.Get(ctx, "snapshot")
		gomega.Expect(found).To(gomega.BeTrue())
		gomega.Expect(retrieved).To(gomega.Equal(`{"last_line":"ok"}`))
	})

	ginkgo.It("expires values after their TTL", func() {
		cacheInstance.Set(ctx, "short", "lived", 50*time.Millisecond)
		gomega.Eventually(func() bool {
			_, found := cacheInstance.Get(ctx, "short")
			return found
		}, time.Second, 20*time.Millisecond).Should(gomega.BeFalse())
	})

	ginkgo.It("removes deleted values", func() {
		cacheInstance.Set(ctx, "gone", "soon", 0)
		cacheInstance.Delete(ctx, "gone")

		_, found := cacheInstance.Get(ctx, "gone")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.It("ignores cancelled contexts", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		gomega.Expect(cacheInstance.Set(cancelled, "key", "value", 0)).To(gomega.BeFalse())
		_, err := cacheInstance.GetOrSet(cancelled, "key", 0, func() (any, error) {
			ginkgo.Fail("loader should not be called with cancelled context")
			return nil, nil
		})
		gomega.Expect(err).To(gomega.MatchError(context.Canceled))
	})

	ginkgo.Context("GetOrSet", func() {
		ginkgo.It("loads a missing key once", func() {
			var calls atomic.Int32
			loader := func() (any, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return "loaded", nil
			}

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer ginkgo.GinkgoRecover()
					defer wg.Done()
					value, err := cacheInstance.GetOrSet(ctx, "lazy", 0, loader)
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
					gomega.Expect(value).To(gomega.Equal("loaded"))
				}()
			}
			wg.Wait()

			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
		})

		ginkgo.It("does not cache loader failures", func() {
			boom := errors.New("boom")
			_, err := cacheInstance.GetOrSet(ctx, "broken", 0, func() (any, error) { return nil, boom })
			gomega.Expect(err).To(gomega.MatchError(boom))

			_, found := cacheInstance.Get(ctx, "broken")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})
})
