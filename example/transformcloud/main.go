package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/akmonengine/geokernel/device"
	"github.com/akmonengine/geokernel/geometry"
	"github.com/akmonengine/geokernel/logging"
	"github.com/akmonengine/geokernel/rotation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "transformcloud",
		Short:        "Transform a random point cloud and print its bounds",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			v.SetEnvPrefix("GEOKERNEL")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Int("points", 100_000, "number of random points")
	flags.Uint64("seed", 1, "random seed")
	flags.Int("workers", runtime.GOMAXPROCS(0), "goroutines per kernel")
	flags.Int("min-chunk", device.DEFAULT_MIN_CHUNK_SIZE, "smallest number of points per worker")
	flags.String("order", rotation.XYZ.String(), "euler order: XYZ, YZX, ZXY, XZY, ZYX or YXZ")
	flags.String("euler", "0,0,0", "euler angles in radians")
	flags.Float32("scale", 1, "scale factor about the center")
	flags.String("translate", "0,0,0", "target center of the cloud")
	flags.String("verbosity", logging.VerbosityInfo.String(), "off, fatal, error, warning, info or debug")
	flags.Bool("stream", false, "run the operations on an asynchronous stream")
	flags.Bool("metrics", false, "print the kernel counters")
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	verbosity, ok := logging.ParseVerbosityLevel(v.GetString("verbosity"))
	if !ok {
		return errors.Errorf("unknown verbosity %q", v.GetString("verbosity"))
	}
	logging.SetVerbosityLevel(verbosity)

	order, err := rotation.ParseOrder(v.GetString("order"))
	if err != nil {
		return err
	}
	euler, err := parseVec3(v.GetString("euler"))
	if err != nil {
		return errors.Wrap(err, "euler")
	}
	translate, err := parseVec3(v.GetString("translate"))
	if err != nil {
		return errors.Wrap(err, "translate")
	}

	reg := prometheus.NewRegistry()
	dev := device.NewDevice(device.Config{
		Name:         "cpu",
		Workers:      v.GetInt("workers"),
		MinChunkSize: v.GetInt("min-chunk"),
	}, device.WithMetrics(device.NewMetrics(reg)))
	logging.Logger().Debugw("device ready", "device", dev.String())

	pc, err := geometry.NewPointCloud(dev, randomCloud(v.GetInt("points"), v.GetUint64("seed")))
	if err != nil {
		return err
	}
	var stream *device.Stream
	if v.GetBool("stream") {
		stream = dev.NewStream()
		defer stream.Close()
		pc.Context = stream
	} else {
		pc.Context = dev.Sync()
	}

	start := time.Now()
	pc.Translate(translate, false).
		Rotate(rotation.FromEuler(order, euler), true).
		Scale(float32(v.GetFloat64("scale")), true)
	pc.PaintUniformColor(colorful.Hsv(200, 0.6, 0.9))
	if stream != nil {
		if err := stream.Synchronize(); err != nil {
			return err
		}
	}
	if err := pc.Err(); err != nil {
		return err
	}
	box := pc.GetAxisAlignedBoundingBox()
	center := pc.GetCenter()
	logging.Logger().Infow("transformed point cloud",
		"points", pc.Points.Len(),
		"order", order.String(),
		"stream", stream != nil,
		"elapsed", time.Since(start),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "min    %v\n", box.Min)
	fmt.Fprintf(out, "max    %v\n", box.Max)
	fmt.Fprintf(out, "center %v\n", center)
	fmt.Fprintf(out, "extent %v\n", box.GetExtent())

	if v.GetBool("metrics") {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				labels := make([]string, 0, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					labels = append(labels, l.GetName()+"="+l.GetValue())
				}
				fmt.Fprintf(out, "%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			}
		}
	}
	return nil
}

// randomCloud spreads n points uniformly in the [-1, 1] cube.
func randomCloud(n int, seed uint64) []mgl32.Vec3 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	points := make([]mgl32.Vec3, max(0, n))
	for i := range points {
		points[i] = mgl32.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1}
	}
	return points
}

// parseVec3 reads three comma or space separated numbers.
func parseVec3(s string) (mgl32.Vec3, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) != 3 {
		return mgl32.Vec3{}, errors.Errorf("expected 3 components, got %q", s)
	}
	var vec mgl32.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return mgl32.Vec3{}, errors.WithStack(err)
		}
		vec[i] = float32(x)
	}
	return vec, nil
}
