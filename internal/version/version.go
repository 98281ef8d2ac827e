package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X bjh.co.th/clinicops/internal/version.Version=1.2.3"
var Version = "1.0"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " BJH Clinic Operations."

	return fmt.Sprintf("%s\nClinicops (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Clinicops

	const s = `
   ____ _ _       _
  / ___| (_)_ __ (_) ___ ___  _ __  ___
 | |   | | | '_ \| |/ __/ _ \| '_ \/ __|
 | |___| | | | | | | (_| (_) | |_) \__ \
  \____|_|_|_| |_|_|\___\___/| .__/|___/
                             |_|
`
	return s
}
