// Package kms wraps the raw DRM/KMS ioctl surface: resource and
// property enumeration, framebuffer creation, PRIME handle import,
// dumb buffers, and legacy + atomic commit primitives.
//
// Every function here takes a file descriptor (or *os.File) and talks
// directly to the kernel; it carries no state of its own and knows
// nothing about connectors "being connected" or commits "being
// blocking" — that policy lives in the root package. This mirrors the
// split the teacher library draws between its root package (device,
// version, capabilities) and its mode package (resource ioctls).
package kms

const (
	DisplayModeNameLen = 32

	// Connector connection states, as reported by the kernel.
	Connected         = 1
	Disconnected      = 2
	UnknownConnection = 3

	// Mode flags (subset relevant to this backend).
	ModeFlagInterlace = 1 << 4
	ModeFlagDblScan   = 1 << 5
	ModeFlagNHSync    = 1 << 1
	ModeFlagPVSync    = 1 << 2

	ModeTypePreferred = 1 << 3

	// Plane types, read from the KMS "type" enum property.
	PlaneTypePrimary = 1
	PlaneTypeCursor  = 2
	PlaneTypeOverlay = 0

	// Page-flip ioctl flags.
	PageFlipEvent = 0x01
	PageFlipAsync = 0x02

	// AddFB2 flags.
	FBModifiers = 1 << 1

	// Modifiers.
	FormatModLinear  = uint64(0)
	FormatModInvalid = ^uint64(0)

	// Object types for the generic property ioctl.
	ObjectCRTC      = 0xcccccccc
	ObjectConnector = 0xc0c0c0c0
	ObjectEncoder   = 0xe0e0e0e0
	ObjectPlane     = 0xeeeeeeee
)

type (
	sysCap struct {
		cap uint64
		val uint64
	}

	sysClientCap struct {
		capability uint64
		value      uint64
	}

	sysPrimeHandle struct {
		handle uint32
		flags  uint32
		fd     int32
	}

	sysResources struct {
		fbIDPtr              uintptr
		crtcIDPtr            uintptr
		connectorIDPtr       uintptr
		encoderIDPtr         uintptr
		CountFbs             uint32
		CountCrtcs           uint32
		CountConnectors      uint32
		CountEncoders        uint32
		MinWidth, MaxWidth   uint32
		MinHeight, MaxHeight uint32
	}

	// Info is a single display mode as reported (or synthesized) for a
	// connector.
	Info struct {
		Clock                                         uint32
		Hdisplay, HsyncStart, HsyncEnd, Htotal, Hskew uint16
		Vdisplay, VsyncStart, VsyncEnd, Vtotal, Vscan uint16

		Vrefresh uint32

		Flags uint32
		Type  uint32
		Name  [DisplayModeNameLen]byte
	}

	sysGetConnector struct {
		encodersPtr   uintptr
		modesPtr      uintptr
		propsPtr      uintptr
		propValuesPtr uintptr

		countModes    uint32
		countProps    uint32
		countEncoders uint32

		encoderID       uint32
		ID              uint32
		connectorType   uint32
		connectorTypeID uint32

		connection        uint32
		mmWidth, mmHeight uint32
		subpixel          uint32

		pad uint32
	}

	// Connector is the result of reading a kernel connector object.
	Connector struct {
		ID              uint32
		EncoderID       uint32
		Type            uint32
		TypeID          uint32
		Connection      uint32
		WidthMM, HeightMM uint32
		Subpixel        uint32

		Modes    []Info
		Props    []uint32
		PropVals []uint64
		Encoders []uint32
	}

	sysGetEncoder struct {
		id  uint32
		typ uint32

		crtcID uint32

		possibleCrtcs  uint32
		possibleClones uint32
	}

	// Encoder bridges a connector to a CRTC.
	Encoder struct {
		ID     uint32
		Type   uint32
		CrtcID uint32

		PossibleCrtcs  uint32
		PossibleClones uint32
	}

	sysCrtc struct {
		setConnectorsPtr uintptr
		countConnectors  uint32

		id   uint32
		fbID uint32

		x, y uint32

		gammaSize uint32
		modeValid uint32
		mode      Info
	}

	// Crtc is the result of reading a kernel CRTC object.
	Crtc struct {
		ID       uint32
		BufferID uint32

		X, Y          uint32
		ModeValid     bool
		Mode          Info
		GammaSize     uint32
	}

	sysGetPlaneResources struct {
		planeIDPtr uintptr
		CountPlanes uint32
	}

	sysGetPlane struct {
		planeID    uint32
		crtcID     uint32
		fbID       uint32
		possibleCrtcs uint32

		gammaSize uint32
		pad       uint32

		countFormatTypes uint32
		formatTypePtr    uintptr
	}

	// Plane is the result of reading a kernel plane object.
	Plane struct {
		ID            uint32
		CrtcID        uint32
		FbID          uint32
		PossibleCrtcs uint32
		Formats       []uint32
	}

	sysSetPlane struct {
		planeID uint32
		crtcID  uint32
		fbID    uint32
		flags   uint32

		crtcX, crtcY           int32
		crtcW, crtcH           uint32
		srcX, srcY, srcH, srcW uint32
	}

	sysFBCmd struct {
		fbID          uint32
		width, height uint32
		pitch         uint32
		bpp           uint32
		depth         uint32
		handle        uint32
	}

	sysFBCmd2 struct {
		fbID          uint32
		width, height uint32
		pixelFormat   uint32
		flags         uint32

		handles  [4]uint32
		pitches  [4]uint32
		offsets  [4]uint32
		modifier [4]uint64
	}

	sysRmFB struct {
		handle uint32
	}

	sysPageFlip struct {
		crtcID   uint32
		fbID     uint32
		flags    uint32
		reserved uint32
		userData uint64
	}

	sysCreateDumb struct {
		height, width uint32
		bpp           uint32
		flags         uint32

		handle uint32
		pitch  uint32
		size   uint64
	}

	// DumbBuffer is a kernel-allocated linear buffer mapped with mmap.
	// The core commit path never uses one; it only ever imports
	// dmabufs.
	DumbBuffer struct {
		Width, Height uint32
		BPP           uint32
		Handle        uint32
		Pitch         uint32
		Size          uint64
	}

	sysMapDumb struct {
		handle uint32
		pad    uint32
		offset uint64
	}

	sysDestroyDumb struct {
		handle uint32
	}

	sysGetProperty struct {
		valuesPtr    uintptr
		enumBlobPtr  uintptr
		propID       uint32
		flags        uint32
		name         [32]byte
		countValues  uint32
		countEnumBlobs uint32
	}

	sysGetPropBlob struct {
		blobID uint32
		length uint32
		dataPtr uintptr
	}

	sysObjGetProperties struct {
		propsPtr      uintptr
		propValuesPtr uintptr
		countProps    uint32
		objID         uint32
		objType       uint32
	}

	sysCreateBlob struct {
		dataPtr uintptr
		length  uint32
		blobID  uint32
	}

	sysDestroyBlob struct {
		blobID uint32
	}

	sysAtomic struct {
		flags          uint32
		countObjs      uint32
		objsPtr        uintptr
		countPropsPtr  uintptr
		propsPtr       uintptr
		propValuesPtr  uintptr
		reserved       uint64
		userData       uint64
	}
)
