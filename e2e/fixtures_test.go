package e2e_test

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draganm/taskfixtures/internal/procrun"
	"github.com/draganm/taskfixtures/pkg/client"
)

func waitExit(p *procrun.Process) *procrun.Result {
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer waitCancel()
	res, err := p.Wait(waitCtx)
	Expect(err).NotTo(HaveOccurred(), "fixture did not exit in time")
	return res
}

var _ = Describe("Task Fixtures E2E Tests", func() {

	Describe("Long-runner", func() {
		It("should keep running until SIGTERM and then exit 0", func() {
			p := startFixture("longrunner", map[string]string{"LONGRUNNER_INTERVAL": "100ms"})

			Eventually(p.Stdout, 10*time.Second, 50*time.Millisecond).Should(ContainSubstring("Long-running fixture started"))
			Eventually(p.Stdout, 10*time.Second, 50*time.Millisecond).Should(ContainSubstring("Still running..."))
			Consistently(p.Exited, 500*time.Millisecond, 50*time.Millisecond).Should(BeFalse())

			Expect(p.Signal(syscall.SIGTERM)).To(Succeed())

			res := waitExit(p)
			Expect(res.ExitCode).To(Equal(0))
			Expect(res.Stdout).To(ContainSubstring("Received signal terminated"))
		})

		It("should exit 0 on SIGINT as well", func() {
			p := startFixture("longrunner", nil)
			Eventually(p.Stdout, 10*time.Second, 50*time.Millisecond).Should(ContainSubstring("Still running..."))

			Expect(p.Signal(syscall.SIGINT)).To(Succeed())

			res := waitExit(p)
			Expect(res.ExitCode).To(Equal(0))
		})
	})

	Describe("Health-check service", func() {
		var (
			port int
			env  map[string]string
		)

		BeforeEach(func() {
			port = freePort()
			env = map[string]string{
				"PORT0":     strconv.Itoa(port),
				"TASK_HOST": "127.0.0.1",
			}
		})

		waitHealthy := func(c client.Client) {
			Eventually(func() error {
				_, err := c.Healthy(context.Background())
				return err
			}, 10*time.Second, 100*time.Millisecond).Should(Succeed())
		}

		It("should serve the static health routes", func() {
			p := startFixture("healthsvc", env)
			c := client.New(fmt.Sprintf("http://127.0.0.1:%d", port))
			waitHealthy(c)

			res, err := c.Root(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(Equal("root"))
			Expect(res.Instance).NotTo(Equal(uuid.Nil))

			res, err = c.Healthy(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(Equal("healthy"))

			res, err = c.Sick(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(res.Body).To(Equal("sick"))

			_, err = c.SlowHealthy(context.Background())
			Expect(client.IsNotFound(err)).To(BeTrue())

			Eventually(p.Stdout, 5*time.Second, 50*time.Millisecond).Should(ContainSubstring("route=/sick"))

			Expect(p.Signal(syscall.SIGTERM)).To(Succeed())
			res2 := waitExit(p)
			Expect(res2.ExitCode).To(Equal(0))
			Expect(res2.Stdout).To(ContainSubstring("Received signal, shutting down"))
		})

		It("should turn /slowhealthy healthy after the threshold", func() {
			env["SLOW_HEALTHY"] = "true"
			env["HEALTHY_AFTER"] = "2s"
			p := startFixture("healthsvc", env)
			c := client.New(fmt.Sprintf("http://127.0.0.1:%d", port))
			waitHealthy(c)

			res, err := c.SlowHealthy(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))

			Eventually(func() int {
				res, err := c.SlowHealthy(context.Background())
				if err != nil {
					return 0
				}
				return res.StatusCode
			}, 10*time.Second, 200*time.Millisecond).Should(Equal(http.StatusOK))

			res, err = c.Sick(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))

			Expect(p.Signal(syscall.SIGTERM)).To(Succeed())
			Expect(waitExit(p).ExitCode).To(Equal(0))
		})

		It("should fail at startup without PORT0", func() {
			delete(env, "PORT0")
			res, err := fixture("healthsvc", env).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.ExitCode).NotTo(Equal(0))
			Expect(res.Stdout + res.Stderr).To(ContainSubstring("port"))
		})

		It("should fail at startup without TASK_HOST", func() {
			delete(env, "TASK_HOST")
			res, err := fixture("healthsvc", env).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.ExitCode).NotTo(Equal(0))
			Expect(res.Stdout + res.Stderr).To(ContainSubstring("host"))
		})
	})

	Describe("Sleeper", func() {
		It("should sleep T seconds and exit 0", func() {
			res, err := fixture("sleeper", map[string]string{"T": "0.2"}).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.ExitCode).To(Equal(0))
			Expect(res.Stdout).To(ContainSubstring("Sleeping 200ms..."))
			Expect(res.Stdout).To(ContainSubstring("Awake"))
		})

		It("should exit 0 when terminated mid-sleep", func() {
			p := startFixture("sleeper", map[string]string{"T": "60"})
			Eventually(p.Stdout, 10*time.Second, 50*time.Millisecond).Should(ContainSubstring("Sleeping"))

			Expect(p.Signal(syscall.SIGTERM)).To(Succeed())
			res := waitExit(p)
			Expect(res.ExitCode).To(Equal(0))
			Expect(res.Stdout).NotTo(ContainSubstring("Awake"))
		})
	})

	Describe("Failer", func() {
		It("should fail with exit code 1 by default", func() {
			res, err := fixture("failer", nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.ExitCode).To(Equal(1))
			Expect(res.Stdout).To(ContainSubstring("Failing now"))
			Expect(res.Stderr).To(ContainSubstring("ERROR: intentional failure"))
		})

		It("should use the configured exit code", func() {
			res, err := fixture("failer", nil, "--exit-code", "42").Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.ExitCode).To(Equal(42))
		})
	})
})
