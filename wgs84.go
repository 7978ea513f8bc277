package mapproj

import "fmt"

// DefaultUTMConverter is a WGS84 ellipsoid based UTM converter.
var DefaultUTMConverter *UTM

// DefaultUPSConverter is a WGS84 ellipsoid based UPS converter.
var DefaultUPSConverter *UPS

func init() {
	var err error
	DefaultUTMConverter, err = NewUTM(WGS84, 0)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM converter: %s", err))
	}
	DefaultUPSConverter, err = NewUPS(WGS84)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UPS converter: %s", err))
	}
}
