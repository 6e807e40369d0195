package transport

import (
	"fmt"

	"go.bug.st/serial/enumerator"

	"github.com/coddingtonbear/sark100web/pkg/models"
)

// ListPorts returns the serial ports present on the host
func ListPorts() ([]models.PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]models.PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, models.PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return ports, nil
}
