package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrConfigFile marks a cnf file the reader could not make sense of.
var ErrConfigFile = errors.New("storage: malformed configuration file")

// WriteConfig writes a cnf file: particle count, box edge, then one row
// per particle holding the position and, when v is non-nil, the velocity.
func WriteConfig(path string, box float64, r, v []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	n := len(r) / 3
	fmt.Fprintf(w, "%d\n", n)
	fmt.Fprintf(w, "%15.10f\n", box)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%15.10f%15.10f%15.10f", r[3*i], r[3*i+1], r[3*i+2])
		if v != nil {
			fmt.Fprintf(w, "%15.10f%15.10f%15.10f", v[3*i], v[3*i+1], v[3*i+2])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadConfig reads a cnf file written by WriteConfig. The velocity slice
// is nil when the file holds positions only.
func ReadConfig(path string) (box float64, r, v []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n, err := readInt(sc, path)
	if err != nil {
		return 0, nil, nil, err
	}
	if n < 1 {
		return 0, nil, nil, fmt.Errorf("%w: %s: particle count %d", ErrConfigFile, path, n)
	}
	box, err = readFloat(sc, path)
	if err != nil {
		return 0, nil, nil, err
	}

	r = make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		fields, err := readFields(sc, path)
		if err != nil {
			return 0, nil, nil, err
		}
		switch len(fields) {
		case 3:
			if v != nil {
				return 0, nil, nil, fmt.Errorf("%w: %s: row %d lost its velocities", ErrConfigFile, path, i+1)
			}
		case 6:
			if i == 0 {
				v = make([]float64, 0, 3*n)
			} else if v == nil {
				return 0, nil, nil, fmt.Errorf("%w: %s: row %d gained velocities", ErrConfigFile, path, i+1)
			}
		default:
			return 0, nil, nil, fmt.Errorf("%w: %s: row %d has %d fields", ErrConfigFile, path, i+1, len(fields))
		}
		r = append(r, fields[0], fields[1], fields[2])
		if len(fields) == 6 {
			v = append(v, fields[3], fields[4], fields[5])
		}
	}
	return box, r, v, nil
}

func readLine(sc *bufio.Scanner, path string) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: unexpected end of file", ErrConfigFile, path)
	}
	return sc.Text(), nil
}

func readInt(sc *bufio.Scanner, path string) (int, error) {
	line, err := readLine(sc, path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a count", ErrConfigFile, path, strings.TrimSpace(line))
	}
	return n, nil
}

func readFloat(sc *bufio.Scanner, path string) (float64, error) {
	line, err := readLine(sc, path)
	if err != nil {
		return 0, err
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrConfigFile, path, strings.TrimSpace(line))
	}
	return x, nil
}

func readFields(sc *bufio.Scanner, path string) ([]float64, error) {
	line, err := readLine(sc, path)
	if err != nil {
		return nil, err
	}
	parts := strings.Fields(line)
	fields := make([]float64, 0, len(parts))
	for _, p := range parts {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a number", ErrConfigFile, path, p)
		}
		fields = append(fields, x)
	}
	return fields, nil
}
