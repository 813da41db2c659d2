package wavefront

// ParseMTL parses MTL text into a name to material mapping. Statements
// outside a 'newmtl' block are skipped; a file without any 'newmtl' yields
// an empty MTL. A repeated material name overwrites the earlier one.
func ParseMTL(data string) (MTL, error) {
	mtl := make(MTL)
	lines := splitLines(data)

	for i := 0; i < len(lines); i++ {
		l := lines[i]
		if l.Command() != "newmtl" {
			continue
		}
		args := l.Args()
		if len(args) == 0 {
			return nil, parseErrorf(InvalidToken, l.Number, "Missing material name")
		}

		material, read, err := parseMaterial(args[0], lines[i+1:])
		if err != nil {
			return nil, err
		}
		mtl[material.Name] = material
		i += read
	}

	return mtl, nil
}

// parseMaterial consumes property lines until the next 'newmtl' or the end
// of input. It returns the material and the number of lines consumed.
func parseMaterial(name string, lines []line) (Material, int, error) {
	m := Material{Name: name}

	read := 0
	for _, l := range lines {
		command := l.Command()
		if command == "newmtl" {
			break
		}
		read++

		args := l.Args()
		var err error
		switch command {
		case "Ka":
			m.AmbientReflectivity, err = parseRGB(args, l.Number)
		case "Kd":
			m.DiffuseReflectivity, err = parseRGB(args, l.Number)
		case "Ks":
			m.SpecularReflectivity, err = parseRGB(args, l.Number)
		case "Tf":
			m.TransmissionFilter, err = parseRGB(args, l.Number)
		case "illum":
			m.IlluminationModel, err = parseIllum(args, l.Number)
		case "d":
			m.DissolveFactor, err = parseDissolve(args, l.Number)
		case "Ns":
			m.SpecularExponent, err = parseScalar(args, "Ns", l.Number)
		case "sharpness":
			m.Sharpness, err = parseScalar(args, "sharpness", l.Number)
		case "Ni":
			m.OpticalDensity, err = parseOpticalDensity(args, l.Number)
		case "map_Kd":
			if len(args) == 0 {
				err = parseErrorf(InvalidToken, l.Number, "Missing 'map_Kd' file name")
			} else {
				// Options such as -s or -o precede the file name.
				m.DiffuseMap = args[len(args)-1]
			}
		case "#":
		default:
			if command[0] != '#' {
				err = parseErrorf(InvalidToken, l.Number, "Unknown statement: '%s'", command)
			}
		}
		if err != nil {
			return Material{}, 0, err
		}
	}

	return m, read, nil
}

// parseRGB reads 'r [g [b]]'. A missing g is r and a missing b is also r,
// never g.
func parseRGB(args []string, lineN int) (RGB, error) {
	if len(args) == 0 {
		return RGB{}, parseErrorf(InvalidToken, lineN, "Missing R value")
	}
	r, err := parseFloat(args[0])
	if err != nil {
		return RGB{}, parseErrorf(InvalidToken, lineN, "Invalid R value")
	}
	rgb := RGB{R: r, G: r, B: r}
	if len(args) > 1 {
		if rgb.G, err = parseFloat(args[1]); err != nil {
			return RGB{}, parseErrorf(InvalidToken, lineN, "Invalid G value")
		}
	}
	if len(args) > 2 {
		if rgb.B, err = parseFloat(args[2]); err != nil {
			return RGB{}, parseErrorf(InvalidToken, lineN, "Invalid B value")
		}
	}
	return rgb, nil
}

func parseIllum(args []string, lineN int) (IlluminationModel, error) {
	if len(args) == 0 {
		return ColorOnAmbientOff, parseErrorf(InvalidToken, lineN, "Missing 'illum' value")
	}
	model, ok := ParseIlluminationModel(args[0])
	if !ok {
		return ColorOnAmbientOff, parseErrorf(InvalidToken, lineN, "Invalid 'illum' value '%s'", args[0])
	}
	return model, nil
}

func parseDissolve(args []string, lineN int) (DissolveFactor, error) {
	var d DissolveFactor
	if len(args) > 0 && args[0] == "-halo" {
		d.Halo = true
		args = args[1:]
	}
	factor, err := parseScalar(args, "d", lineN)
	if err != nil {
		return DissolveFactor{}, err
	}
	d.Factor = factor
	return d, nil
}

func parseScalar(args []string, statement string, lineN int) (float32, error) {
	if len(args) == 0 {
		return 0, parseErrorf(InvalidToken, lineN, "Missing '%s' value", statement)
	}
	f, err := parseFloat(args[0])
	if err != nil {
		return 0, parseErrorf(InvalidToken, lineN, "Invalid '%s' value", statement)
	}
	return f, nil
}

func parseOpticalDensity(args []string, lineN int) (float32, error) {
	ni, err := parseScalar(args, "Ni", lineN)
	if err != nil {
		return 0, err
	}
	// Written to reject NaN as well.
	if !(ni >= MinOpticalDensity && ni <= MaxOpticalDensity) {
		return 0, parseErrorf(InvalidValue, lineN, "'Ni' value should range between 0.001 and 10")
	}
	return ni, nil
}
