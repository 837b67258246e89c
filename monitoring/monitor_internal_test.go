package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gdrom/disc"
	"github.com/sarchlab/gdrom/drive"
)

type nopLine struct{}

func (nopLine) Raise() {}
func (nopLine) Clear() {}

func monitoredController(name string) *drive.Comp {
	d := disc.MakeMemoryBuilder().
		WithDataTrack(150, make([]byte, disc.Mode1DataSize)).
		WithDataTrack(disc.HighDensityFAD, make([]byte, disc.Mode1DataSize)).
		Build()

	return drive.MakeBuilder().
		WithInterruptLine(nopLine{}).
		WithDisc(d).
		Build(name)
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = NewMonitor()
		m.RegisterController(monitoredController("GDROM0"))
		m.RegisterController(monitoredController("GDROM1"))
	})

	It("should list the registered controllers", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/list_controllers", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal(`["GDROM0","GDROM1"]`))
	})

	It("should report the registers of a controller", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/registers/GDROM1", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusOK))

		var snapshot drive.RegisterSnapshot
		Expect(json.Unmarshal(w.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot.State).To(Equal("ReadCommand"))
		Expect(snapshot.DriveStatus).To(Equal("Pause"))
	})

	It("should serialize controller details", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/controller/GDROM0", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.Len()).NotTo(BeZero())
	})

	It("should inject commands into a controller", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost,
			"/api/command/GDROM0?code=0xef", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should reject malformed command codes", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost,
			"/api/command/GDROM0?code=zzz", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should 404 on unknown controllers", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/registers/NOPE", nil)

		m.router().ServeHTTP(w, r)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should refuse privileged port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(BeZero())

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})
})
