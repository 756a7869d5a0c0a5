package persistence

import (
	"encoding/binary"
	"fmt"
	"os"

	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

// offsetMagic tags the binary file format so a stray file of the wrong
// shape fails fast instead of producing garbage floats.
const offsetMagic = uint32(0x534b4f46) // "SKOF"

const offsetVersion = uint32(1)

// CalibrationState is the rotation matrix and/or target pixel persisted
// between restarts, each independently optional.
type CalibrationState struct {
	HasRotation bool
	Rotation    transform.Matrix3
	HasTarget   bool
	TargetPixel obscontext.PixelCoord
}

// SaveOffset writes cal to path in a platform-neutral binary form that
// round-trips floats exactly: a magic/version header, two presence flags,
// nine float64 rotation components, and two int64 pixel coordinates.
func SaveOffset(path string, cal CalibrationState) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create offset file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, offsetMagic); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, offsetVersion); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, boolToByte(cal.HasRotation)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, boolToByte(cal.HasTarget)); err != nil {
		return err
	}
	for _, row := range cal.Rotation {
		for _, v := range row {
			if err := binary.Write(f, binary.LittleEndian, v); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(f, binary.LittleEndian, int64(cal.TargetPixel.Row)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, int64(cal.TargetPixel.Col)); err != nil {
		return err
	}
	return nil
}

// LoadOffset reads a CalibrationState written by SaveOffset. A missing
// file returns a zero-value CalibrationState with no error.
func LoadOffset(path string) (CalibrationState, error) {
	var cal CalibrationState

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cal, nil
		}
		return cal, fmt.Errorf("open offset file: %w", err)
	}
	defer f.Close()

	var magic, version uint32
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return cal, fmt.Errorf("read offset magic: %w", err)
	}
	if magic != offsetMagic {
		return cal, fmt.Errorf("offset file has wrong magic %x", magic)
	}
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return cal, fmt.Errorf("read offset version: %w", err)
	}

	var hasRotation, hasTarget byte
	if err := binary.Read(f, binary.LittleEndian, &hasRotation); err != nil {
		return cal, err
	}
	if err := binary.Read(f, binary.LittleEndian, &hasTarget); err != nil {
		return cal, err
	}
	cal.HasRotation = hasRotation != 0
	cal.HasTarget = hasTarget != 0

	for i := range cal.Rotation {
		for j := range cal.Rotation[i] {
			var v float64
			if err := binary.Read(f, binary.LittleEndian, &v); err != nil {
				return cal, err
			}
			cal.Rotation[i][j] = v
		}
	}

	var row, col int64
	if err := binary.Read(f, binary.LittleEndian, &row); err != nil {
		return cal, err
	}
	if err := binary.Read(f, binary.LittleEndian, &col); err != nil {
		return cal, err
	}
	cal.TargetPixel = obscontext.PixelCoord{Row: int(row), Col: int(col)}

	return cal, nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// identityIfUnset returns the identity rotation when cal has no rotation,
// so callers always get a usable matrix.
func identityIfUnset(cal CalibrationState) transform.Matrix3 {
	if cal.HasRotation {
		return cal.Rotation
	}
	return transform.Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}
