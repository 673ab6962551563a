package paxdecode

// Warnings returned by the downlink stubs.
const (
	EncodeDownlinkUnsupported = "Encoding of downlink is not supported by the decoder."
	DecodeDownlinkUnsupported = "Decoding of downlink is not supported by the decoder."
)

// Uplink is the input of a network server payload formatter.
type Uplink struct {
	Bytes []byte `json:"bytes"`
	FPort uint8  `json:"fPort"`
}

// UplinkOutput mirrors the payload formatter result object.
type UplinkOutput struct {
	Data     map[string]any `json:"data"`
	Warnings []string       `json:"warnings"`
	Errors   []string       `json:"errors"`
}

// Downlink is the input of a downlink formatter.
type Downlink struct {
	Bytes []byte `json:"bytes"`
	FPort uint8  `json:"fPort"`
}

// DownlinkOutput mirrors the downlink formatter result object.
type DownlinkOutput struct {
	Data     map[string]any `json:"data"`
	Warnings []string       `json:"warnings"`
	Errors   []string       `json:"errors"`
}

// DecodeUplink runs Decode in the payload formatter calling convention.
func DecodeUplink(in Uplink) UplinkOutput {
	return DecodeUplinkWithOptions(in, Options{})
}

// DecodeUplinkWithOptions is DecodeUplink with custom options. Decode
// failures land in Errors, unrecognized payloads in Warnings; Data is then
// empty apart from the optional raw bytes and port.
func DecodeUplinkWithOptions(in Uplink, opts Options) UplinkOutput {
	out := UplinkOutput{Data: map[string]any{}, Warnings: []string{}, Errors: []string{}}
	res, err := DecodeWithOptions(in.Bytes, in.FPort, opts)
	switch {
	case err != nil:
		out.Errors = append(out.Errors, err.Error())
	case !res.Recognized:
		out.Warnings = append(out.Warnings, res.unrecognized.Error())
	default:
		out.Data = res.Fields
	}
	if opts.IncludeRaw {
		out.Data["bytes"] = byteList(in.Bytes)
		out.Data["port"] = in.FPort
	}
	return out
}

// EncodeDownlink echoes the bytes with a warning; downlink commands are not
// encoded.
func EncodeDownlink(in Downlink) DownlinkOutput {
	return DownlinkOutput{
		Data:     map[string]any{"bytes": byteList(in.Bytes)},
		Warnings: []string{EncodeDownlinkUnsupported},
		Errors:   []string{},
	}
}

// DecodeDownlink echoes the bytes with a warning; downlink commands are not
// decoded.
func DecodeDownlink(in Downlink) DownlinkOutput {
	return DownlinkOutput{
		Data:     map[string]any{"bytes": byteList(in.Bytes)},
		Warnings: []string{DecodeDownlinkUnsupported},
		Errors:   []string{},
	}
}

// byteList keeps bytes a JSON number array instead of base64.
func byteList(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
