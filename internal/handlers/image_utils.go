package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"motorsonline/internal/models"
	"motorsonline/utils"
)

// PhotoStore abstracts where listing photos live. The handler only deals in
// public paths.
type PhotoStore interface {
	Save(data []byte, fileName, contentType string) (string, error)
	Delete(publicPath string) error
}

// LocalPhotoStore keeps photos on disk under dir, served at /images/cars/.
type LocalPhotoStore struct {
	Dir string
}

func (s *LocalPhotoStore) Save(data []byte, fileName, contentType string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}
	savePath := filepath.Join(s.Dir, fileName)
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("/images/cars/%s", fileName), nil
}

func (s *LocalPhotoStore) Delete(publicPath string) error {
	name := filepath.Base(publicPath)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid image path %q", publicPath)
	}
	return os.Remove(filepath.Join(s.Dir, name))
}

// S3PhotoStore stores photos in an S3-compatible bucket via utils.S3Storage.
type S3PhotoStore struct {
	Storage *utils.S3Storage
	Folder  string
}

func (s *S3PhotoStore) Save(data []byte, fileName, contentType string) (string, error) {
	return s.Storage.UploadFile(data, fileName, s.Folder, contentType)
}

func (s *S3PhotoStore) Delete(publicPath string) error {
	return s.Storage.DeleteFile(filepath.Base(publicPath), s.Folder)
}

// savePhotoFiles stores each uploaded photo part in slot order and returns
// the image refs. The listing photo sequence is capped at models.MaxCarImages.
func savePhotoFiles(store PhotoStore, files []*multipart.FileHeader) ([]models.CarImage, error) {
	if len(files) > models.MaxCarImages {
		files = files[:models.MaxCarImages]
	}

	var images []models.CarImage
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open image %q: %w", fileHeader.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read image %q: %w", fileHeader.Filename, err)
		}

		timestamp := time.Now().UnixNano()
		ext := filepath.Ext(fileHeader.Filename)
		imageName := fmt.Sprintf("car_image_%d%s", timestamp, ext)

		publicPath, err := store.Save(data, imageName, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}

		images = append(images, models.CarImage{
			Name:     fileHeader.Filename,
			Path:     publicPath,
			Type:     fileHeader.Header.Get("Content-Type"),
			Position: i,
		})
	}
	return images, nil
}

// parseRetainedImages decodes the existing_images form field: the stored
// photo refs the seller kept, in their final order. Stored photos absent
// from this list were cleared during the edit.
func parseRetainedImages(form *multipart.Form) []models.CarImage {
	var retained []models.CarImage
	for _, value := range form.Value["existing_images"] {
		value = strings.TrimSpace(value)
		if value == "" || value == "null" || value == "undefined" {
			continue
		}
		if strings.HasPrefix(value, "[") {
			var batch []models.CarImage
			if err := json.Unmarshal([]byte(value), &batch); err == nil {
				retained = append(retained, batch...)
			}
			continue
		}
		var one models.CarImage
		if err := json.Unmarshal([]byte(value), &one); err == nil && one.Path != "" {
			retained = append(retained, one)
			continue
		}
		// Bare path string.
		retained = append(retained, models.CarImage{Path: strings.Trim(value, `"`)})
	}
	return retained
}

func formInt(r interface{ FormValue(string) string }, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return v
}

func formFloat(r interface{ FormValue(string) string }, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	return v
}
