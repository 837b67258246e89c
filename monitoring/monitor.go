// Package monitoring turns an emulated GD-ROM drive into a small web
// server that exposes its register and protocol state for inspection.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/syifan/goseth"

	"github.com/sarchlab/gdrom/drive"
)

// Monitor allows external inspection and debugging of drive controllers.
type Monitor struct {
	portNumber  int
	actualPort  int
	controllers []*drive.Comp
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterController registers a controller to be monitored.
func (m *Monitor) RegisterController(c *drive.Comp) {
	m.controllers = append(m.controllers, c)
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/list_controllers", m.listControllers)
	r.HandleFunc("/api/registers/{name}", m.listRegisters)
	r.HandleFunc("/api/controller/{name}", m.listControllerDetails)
	r.HandleFunc("/api/command/{name}", m.injectCommand).Methods("POST")

	return r
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.actualPort = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr,
		"Monitoring drive with http://localhost:%d\n", m.actualPort)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()
}

// OpenDashboard opens the controller list in the default browser. The
// server must have been started.
func (m *Monitor) OpenDashboard() {
	if m.actualPort == 0 {
		panic("the monitoring server is not running")
	}

	url := fmt.Sprintf("http://localhost:%d/api/list_controllers",
		m.actualPort)
	dieOnErr(browser.OpenURL(url))
}

func (m *Monitor) listControllers(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, c := range m.controllers {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", c.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listRegisters(w http.ResponseWriter, r *http.Request) {
	c := m.findControllerOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	dieOnErr(json.NewEncoder(w).Encode(c.RegisterSnapshot()))
}

// controllerDetails is the reduced state view handed to the serializer.
// The controller itself holds raw 64 KiB transfer arrays the serializer
// cannot walk.
type controllerDetails struct {
	Name      string
	Registers drive.RegisterSnapshot
	Transfer  drive.TransferSnapshot
}

func (m *Monitor) listControllerDetails(w http.ResponseWriter, r *http.Request) {
	c := m.findControllerOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(controllerDetails{
		Name:      c.Name(),
		Registers: c.RegisterSnapshot(),
		Transfer:  c.TransferSnapshot(),
	})
	serializer.SetMaxDepth(2)

	dieOnErr(serializer.Serialize(w))
}

// injectCommand writes the given code to the controller's command
// register. It is a debugging aid; an illegal code terminates emulation
// exactly as it would from the guest.
func (m *Monitor) injectCommand(w http.ResponseWriter, r *http.Request) {
	c := m.findControllerOr404(w, mux.Vars(r)["name"])
	if c == nil {
		return
	}

	code, err := strconv.ParseUint(r.URL.Query().Get("code"), 0, 16)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	c.WriteRegister(drive.RegStatusCommand, uint16(code))
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) findControllerOr404(
	w http.ResponseWriter,
	name string,
) *drive.Comp {
	for _, c := range m.controllers {
		if c.Name() == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)

	return nil
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
