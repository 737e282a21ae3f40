// Package server is the local HTTP API consumed by the dashboard UI.
package server

type Server struct {
	DealServer
	FlipServer
	SettingsServer
	ScannerServer
}

func NewServer(
	dealServer DealServer,
	flipServer FlipServer,
	settingsServer SettingsServer,
	scannerServer ScannerServer,
) Server {
	return Server{
		DealServer:     dealServer,
		FlipServer:     flipServer,
		SettingsServer: settingsServer,
		ScannerServer:  scannerServer,
	}
}
