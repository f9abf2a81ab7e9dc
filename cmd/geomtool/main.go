package main

import (
	"encoding/json"
	"os"

	geomcodec "github.com/flywave/go-geomcodec"
	"github.com/flywave/go3d/vec3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// MeshDocument is the JSON shape accepted by pack and emitted by
// unpack: flat vertex, normal and face arrays.
type MeshDocument struct {
	Vertices [][3]float32 `json:"vertices"`
	Normals  [][3]float32 `json:"normals,omitempty"`
	Faces    [][3]uint32  `json:"faces"`
}

func (d *MeshDocument) arrays() ([]vec3.T, []vec3.T, [][3]uint32) {
	vertices := make([]vec3.T, len(d.Vertices))
	for i, v := range d.Vertices {
		vertices[i] = vec3.T(v)
	}
	normals := make([]vec3.T, len(d.Normals))
	for i, n := range d.Normals {
		normals[i] = vec3.T(n)
	}
	return vertices, normals, d.Faces
}

func newDocument(vertices, normals []vec3.T, faces [][3]uint32) *MeshDocument {
	doc := &MeshDocument{Faces: faces}
	doc.Vertices = make([][3]float32, len(vertices))
	for i, v := range vertices {
		doc.Vertices[i] = [3]float32(v)
	}
	doc.Normals = make([][3]float32, len(normals))
	for i, n := range normals {
		doc.Normals[i] = [3]float32(n)
	}
	return doc
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := Default()

	app := &cli.App{
		Name:  "geomtool",
		Usage: "Converts triangle meshes to and from compressed geometry buffers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to geomtool yaml config",
			},
		},
		Before: func(c *cli.Context) error {
			loaded, err := LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "pack",
				Usage: "encode a JSON mesh document into a compressed buffer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to mesh JSON file"},
					&cli.StringFlag{Name: "out", Usage: "path to encoded buffer"},
					&cli.IntFlag{Name: "speed", Usage: "speed option, 0 favors compression ratio"},
				},
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.String("in"))
					if err != nil {
						return err
					}
					var doc MeshDocument
					if err := json.Unmarshal(data, &doc); err != nil {
						return err
					}
					vertices, normals, faces := doc.arrays()
					speed := cfg.Speed
					if c.IsSet("speed") {
						speed = c.Int("speed")
					}
					if err := geomcodec.EncodeToFile(c.String("out"), vertices, normals, faces, speed); err != nil {
						return err
					}
					sugar.Infow("packed mesh",
						"vertices", len(vertices),
						"faces", len(faces),
						"out", c.String("out"))
					return nil
				},
			},
			{
				Name:  "unpack",
				Usage: "decode a compressed buffer into a JSON mesh document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to encoded buffer"},
					&cli.StringFlag{Name: "out", Usage: "path to mesh JSON file"},
				},
				Action: func(c *cli.Context) error {
					vertices, normals, faces, err := geomcodec.DecodeFromFile(c.String("in"))
					if err != nil {
						return err
					}
					data, err := json.MarshalIndent(newDocument(vertices, normals, faces), "", "  ")
					if err != nil {
						return err
					}
					return os.WriteFile(c.String("out"), data, os.ModePerm)
				},
			},
			{
				Name:  "togltf",
				Usage: "decode a compressed buffer and write a GLB file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to encoded buffer"},
					&cli.StringFlag{Name: "out", Usage: "path to glb file"},
				},
				Action: func(c *cli.Context) error {
					vertices, normals, faces, err := geomcodec.DecodeFromFile(c.String("in"))
					if err != nil {
						return err
					}
					doc, err := geomcodec.ToGltf(vertices, normals, faces)
					if err != nil {
						return err
					}
					bt, err := geomcodec.GetGltfBinary(doc, cfg.Padding)
					if err != nil {
						return err
					}
					return os.WriteFile(c.String("out"), bt, os.ModePerm)
				},
			},
			{
				Name:  "toply",
				Usage: "decode a compressed buffer and write a binary PLY file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to encoded buffer"},
					&cli.StringFlag{Name: "out", Usage: "path to ply file"},
				},
				Action: func(c *cli.Context) error {
					vertices, normals, faces, err := geomcodec.DecodeFromFile(c.String("in"))
					if err != nil {
						return err
					}
					f, err := os.Create(c.String("out"))
					if err != nil {
						return err
					}
					defer f.Close()
					return geomcodec.WritePly(f, vertices, normals, faces)
				},
			},
			{
				Name:  "info",
				Usage: "print the geometry kind and counts of an encoded buffer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "path to encoded buffer"},
				},
				Action: func(c *cli.Context) error {
					buf, err := os.ReadFile(c.String("in"))
					if err != nil {
						return err
					}
					if len(buf) == 0 {
						sugar.Infow("empty buffer", "in", c.String("in"))
						return nil
					}
					kind, err := geomcodec.DefaultCodec.GetEncodedGeometryType(buf)
					if err != nil {
						return err
					}
					if kind != geomcodec.GEOM_TRIANGULAR_MESH {
						sugar.Infow("buffer", "in", c.String("in"), "kind", kind)
						return nil
					}
					vertices, normals, faces, err := geomcodec.Decode(buf)
					if err != nil {
						return err
					}
					sugar.Infow("buffer",
						"in", c.String("in"),
						"kind", kind,
						"vertices", len(vertices),
						"normals", len(normals),
						"faces", len(faces))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Fatalw("geomtool failed", "error", err)
	}
}
