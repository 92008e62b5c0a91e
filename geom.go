package csm

// ParamType enumerates the possible kinds of adjustable parameter value.
type ParamType string

const (
	// ParamNone means the parameter value has not been initialized.
	ParamNone ParamType = "none"
	// ParamFictitious means the value was calculated by resection or
	// other means.
	ParamFictitious ParamType = "fictitious"
	// ParamReal means the value was measured or read from support data.
	ParamReal ParamType = "real"
	// ParamExact means the value was specified and carries no uncertainty.
	ParamExact ParamType = "exact"
)

// ImageCoord is a 2 dimensional point in image space. Usually it is an
// absolute location, but some interfaces use it as a size.
type ImageCoord struct {
	Line float64
	Samp float64
}

// ImageVector is a 2 dimensional vector in image space.
type ImageVector struct {
	Line float64
	Samp float64
}

// ImageCoordCovar is an image coordinate with its 2x2 covariance, stored
// row-major in four elements.
type ImageCoordCovar struct {
	ImageCoord
	Covar [4]float64
}

// CovarAt returns the covariance element at row l, column s.
func (c ImageCoordCovar) CovarAt(l, s int) float64 {
	return c.Covar[2*l+s]
}

// SetCovarAt stores the covariance element at row l, column s.
func (c *ImageCoordCovar) SetCovarAt(l, s int, v float64) {
	c.Covar[2*l+s] = v
}

// EcefCoord is a 3 dimensional location in Earth Centered Earth Fixed
// space. Units are meters when used as a location and meters/second when
// used as a velocity.
type EcefCoord struct {
	X float64
	Y float64
	Z float64
}

// EcefVector is a 3 dimensional vector in Earth Centered Earth Fixed
// space, either a location vector or a velocity vector.
type EcefVector struct {
	X float64
	Y float64
	Z float64
}

// EcefCoordCovar is an ECEF coordinate with its 3x3 covariance, stored
// row-major in nine elements.
type EcefCoordCovar struct {
	EcefCoord
	Covar [9]float64
}

// CovarAt returns the covariance element at row r, column c.
func (e EcefCoordCovar) CovarAt(r, c int) float64 {
	return e.Covar[3*r+c]
}

// SetCovarAt stores the covariance element at row r, column c.
func (e *EcefCoordCovar) SetCovarAt(r, c int, v float64) {
	e.Covar[3*r+c] = v
}
