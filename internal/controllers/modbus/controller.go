package modbusctrl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	mbserver "github.com/tbrandon/mbserver"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/ports"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

// Config for the Modbus controller.
type Config struct {
	DeviceID string
	Addr     string
	UnitID   byte // UnitID (Modbus slave/unit ID). Use an integer 1..247.
}

type Controller struct {
	svc ports.CalculatorService
	cfg Config
	log *zap.SugaredLogger

	serv *mbserver.Server
}

func New(svc ports.CalculatorService, cfg Config, log *zap.SugaredLogger) (*Controller, error) {
	if cfg.UnitID == 0 {
		return nil, errors.New("modbus: UnitID is required (non-zero)")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:1502"
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{svc: svc, cfg: cfg, log: log.With("controller", "modbus")}, nil
}

// Run starts the Modbus server with handlers that read from and write to the
// calculator directly. It blocks until ctx is canceled.
//
//	coil 0               results shown; write ON to calculate, OFF to reset
//	holding 0..3         draft inputs (apartments, bedrooms x100, roof sq ft, gas x100)
//	input 0..23          results, float32 pairs
func (c *Controller) Run(ctx context.Context) error {
	serv := mbserver.NewServer()
	c.serv = serv

	// Register handlers before listening; mbserver reads the table from its goroutines.
	serv.RegisterFunctionHandler(1, c.readCoils)
	serv.RegisterFunctionHandler(3, c.readHoldingRegisters)
	serv.RegisterFunctionHandler(4, c.readInputRegisters)
	serv.RegisterFunctionHandler(5, c.writeSingleCoil)
	serv.RegisterFunctionHandler(6, c.writeSingleRegister)
	serv.RegisterFunctionHandler(16, c.writeMultipleRegisters)

	if err := serv.ListenTCP(c.cfg.Addr); err != nil {
		return fmt.Errorf("mbserver listen tcp %s: %w", c.cfg.Addr, err)
	}
	c.log.Infow("listening", "addr", c.cfg.Addr, "unit_id", c.cfg.UnitID)

	<-ctx.Done()
	serv.Close()
	return ctx.Err()
}

// readRange parses the start/quantity header shared by read requests.
func readRange(frame mbserver.Framer, maxQty int) (start, qty int, exc *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return 0, 0, &mbserver.IllegalDataValue
	}
	start = int(binary.BigEndian.Uint16(data[0:2]))
	qty = int(binary.BigEndian.Uint16(data[2:4]))
	if qty == 0 || qty > maxQty {
		return 0, 0, &mbserver.IllegalDataValue
	}
	return start, qty, nil
}

func (c *Controller) readCoils(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRange(frame, 2000)
	if exc != nil {
		return []byte{}, exc
	}
	// Only coil 0 exists.
	if start != 0 || qty != 1 {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	coil := byte(0)
	if c.svc.Get().Mode == calculator.ModeResults {
		coil = 0x01
	}
	return []byte{1, coil}, &mbserver.Success
}

func (c *Controller) readHoldingRegisters(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRange(frame, 125)
	if exc != nil {
		return []byte{}, exc
	}
	if start+qty > holdingCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	draft := c.svc.Get().Draft
	regs := make([]uint16, 0, qty)
	for addr := start; addr < start+qty; addr++ {
		f, _ := fieldAt(addr)
		regs = append(regs, encodeInput(f, draft.Value(f)))
	}
	return registerBytes(regs), &mbserver.Success
}

func (c *Controller) readInputRegisters(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRange(frame, 125)
	if exc != nil {
		return []byte{}, exc
	}
	if start+qty > inputRegisterCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	// Entry mode reads as zeros.
	all := resultRegisters(c.svc.Get().Result)
	return registerBytes(all[start : start+qty]), &mbserver.Success
}

func (c *Controller) writeSingleCoil(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := binary.BigEndian.Uint16(data[0:2])
	value := binary.BigEndian.Uint16(data[2:4])

	if addr != 0 {
		return []byte{}, &mbserver.IllegalDataAddress
	}

	switch value {
	case 0x0000:
		c.svc.Reset()
	case 0xFF00:
		if err := c.svc.Calculate(); err != nil {
			c.log.Debugw("calculate rejected", "error", err)
			return []byte{}, &mbserver.IllegalDataValue
		}
	default:
		return []byte{}, &mbserver.IllegalDataValue
	}

	// echo request (address + value)
	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

func (c *Controller) writeSingleRegister(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := int(binary.BigEndian.Uint16(data[0:2]))
	value := binary.BigEndian.Uint16(data[2:4])

	if exc := c.writeField(addr, value); exc != nil {
		return []byte{}, exc
	}

	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

func (c *Controller) writeMultipleRegisters(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	d := frame.GetData()
	if len(d) < 5 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := binary.BigEndian.Uint16(d[0:2])
	quantity := binary.BigEndian.Uint16(d[2:4])
	byteCount := int(d[4])
	if quantity == 0 || byteCount != int(quantity)*2 || len(d) < 5+byteCount {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if int(start)+int(quantity) > holdingCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}

	// Decode the whole block first so a rejected value leaves the draft as it was.
	values := make(map[sizing.Field]float64, quantity)
	for i := 0; i < int(quantity); i++ {
		f, _ := fieldAt(int(start) + i)
		values[f] = decodeInput(f, binary.BigEndian.Uint16(d[5+i*2:5+i*2+2]))
	}
	if exc := c.writeException(c.svc.SetFields(values)); exc != nil {
		return []byte{}, exc
	}

	resp := make([]byte, 4)
	binary.BigEndian.PutUint16(resp[0:2], start)
	binary.BigEndian.PutUint16(resp[2:4], quantity)
	return resp, &mbserver.Success
}

func (c *Controller) writeField(addr int, value uint16) *mbserver.Exception {
	f, ok := fieldAt(addr)
	if !ok {
		return &mbserver.IllegalDataAddress
	}
	return c.writeException(c.svc.SetField(f, decodeInput(f, value)))
}

// writeException maps a draft update error to a Modbus exception.
func (c *Controller) writeException(err error) *mbserver.Exception {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, calculator.ErrNotInEntryMode):
		return &mbserver.SlaveDeviceBusy
	default:
		c.log.Debugw("write rejected", "error", err)
		return &mbserver.IllegalDataValue
	}
}
